package repository

import (
	"time"

	"github.com/ndmanh/studynotes/internal/model"
	"gorm.io/gorm"
)

type NoteRepository interface {
	Create(note *model.Note) error
	FindByIDForStudent(id, studentID uint) (*model.Note, error)
	FindAllByStudent(studentID uint) ([]model.Note, error)
	FindAllByModule(moduleID, studentID uint) ([]model.Note, error)
	Update(note *model.Note) error
	UpdateSummary(id uint, summary string, generatedAt time.Time) error
	Delete(id uint) error
}

type noteRepository struct {
	db *gorm.DB
}

func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) Create(note *model.Note) error {
	return r.db.Create(note).Error
}

// FindByIDForStudent scopes the lookup to the owning student so that a note
// id belonging to someone else behaves like not-found.
func (r *noteRepository) FindByIDForStudent(id, studentID uint) (*model.Note, error) {
	var note model.Note
	err := r.db.Preload("Module").Where("id = ? AND student_id = ?", id, studentID).First(&note).Error
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *noteRepository) FindAllByStudent(studentID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.Where("student_id = ?", studentID).Order("updated_at desc").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) FindAllByModule(moduleID, studentID uint) ([]model.Note, error) {
	var notes []model.Note
	err := r.db.Where("module_id = ? AND student_id = ?", moduleID, studentID).
		Order("updated_at desc").Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *noteRepository) Update(note *model.Note) error {
	return r.db.Save(note).Error
}

func (r *noteRepository) UpdateSummary(id uint, summary string, generatedAt time.Time) error {
	return r.db.Model(&model.Note{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"summary":              summary,
			"summary_generated_at": generatedAt,
		}).Error
}

func (r *noteRepository) Delete(id uint) error {
	return r.db.Delete(&model.Note{}, id).Error
}
