package repository

import (
	"github.com/ndmanh/studynotes/internal/model"
	"gorm.io/gorm"
)

type ModuleRepository interface {
	Create(module *model.Module) error
	FindByIDForStudent(id, studentID uint) (*model.Module, error)
	FindAllByStudent(studentID uint) ([]model.Module, error)
	Update(module *model.Module) error
	Delete(id uint) error
}

type moduleRepository struct {
	db *gorm.DB
}

func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) Create(module *model.Module) error {
	return r.db.Create(module).Error
}

func (r *moduleRepository) FindByIDForStudent(id, studentID uint) (*model.Module, error) {
	var module model.Module
	err := r.db.Where("id = ? AND student_id = ?", id, studentID).First(&module).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

func (r *moduleRepository) FindAllByStudent(studentID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.db.Where("student_id = ?", studentID).Order("created_at desc").Find(&modules).Error
	if err != nil {
		return nil, err
	}
	return modules, nil
}

func (r *moduleRepository) Update(module *model.Module) error {
	return r.db.Save(module).Error
}

func (r *moduleRepository) Delete(id uint) error {
	return r.db.Delete(&model.Module{}, id).Error
}
