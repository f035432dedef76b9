package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/rs/zerolog/log"
)

type NoteService interface {
	CreateNote(studentID uint, req dto.NoteCreateDTO) (*dto.NoteDTO, error)
	GetNote(studentID, noteID uint) (*dto.NoteDTO, error)
	GetNotes(studentID uint) ([]dto.NoteDTO, error)
	GetNotesForModule(studentID, moduleID uint) ([]dto.NoteDTO, error)
	UpdateNote(studentID, noteID uint, req dto.NoteUpdateDTO) (*dto.NoteDTO, error)
	DeleteNote(studentID, noteID uint) error
	SummarizeNote(ctx context.Context, studentID, noteID uint) (*dto.NoteSummaryDTO, error)
}

type noteService struct {
	noteRepo   repository.NoteRepository
	moduleRepo repository.ModuleRepository
	generator  QuizGeneratorService
}

func NewNoteService(noteRepo repository.NoteRepository, moduleRepo repository.ModuleRepository, generator QuizGeneratorService) NoteService {
	return &noteService{noteRepo: noteRepo, moduleRepo: moduleRepo, generator: generator}
}

func (s *noteService) CreateNote(studentID uint, req dto.NoteCreateDTO) (*dto.NoteDTO, error) {
	if _, err := s.moduleRepo.FindByIDForStudent(req.ModuleID, studentID); err != nil {
		return nil, fmt.Errorf("module not found with ID %d: %w", req.ModuleID, err)
	}

	note := model.Note{
		StudentID: studentID,
		ModuleID:  req.ModuleID,
		Title:     req.Title,
		Content:   req.Content,
	}
	if err := s.noteRepo.Create(&note); err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("CreateNote: repository error")
		return nil, fmt.Errorf("database error creating note: %w", err)
	}
	return noteToDTO(&note)
}

func (s *noteService) GetNote(studentID, noteID uint) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.FindByIDForStudent(noteID, studentID)
	if err != nil {
		return nil, fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}
	return noteToDTO(note)
}

func (s *noteService) GetNotes(studentID uint) ([]dto.NoteDTO, error) {
	notes, err := s.noteRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetNotes: repository error")
		return nil, fmt.Errorf("error fetching notes: %w", err)
	}
	return notesToDTOs(notes), nil
}

func (s *noteService) GetNotesForModule(studentID, moduleID uint) ([]dto.NoteDTO, error) {
	if _, err := s.moduleRepo.FindByIDForStudent(moduleID, studentID); err != nil {
		return nil, fmt.Errorf("module not found with ID %d: %w", moduleID, err)
	}
	notes, err := s.noteRepo.FindAllByModule(moduleID, studentID)
	if err != nil {
		log.Error().Err(err).Uint("moduleID", moduleID).Msg("GetNotesForModule: repository error")
		return nil, fmt.Errorf("error fetching notes for module %d: %w", moduleID, err)
	}
	return notesToDTOs(notes), nil
}

func (s *noteService) UpdateNote(studentID, noteID uint, req dto.NoteUpdateDTO) (*dto.NoteDTO, error) {
	note, err := s.noteRepo.FindByIDForStudent(noteID, studentID)
	if err != nil {
		return nil, fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}
	if req.Title != "" {
		note.Title = req.Title
	}
	if req.Content != "" {
		note.Content = req.Content
		// Content changed, the stored summary no longer reflects it.
		note.Summary = nil
		note.SummaryGeneratedAt = nil
	}
	if err := s.noteRepo.Update(note); err != nil {
		log.Error().Err(err).Uint("noteID", noteID).Msg("UpdateNote: repository error")
		return nil, fmt.Errorf("database error updating note: %w", err)
	}
	return noteToDTO(note)
}

func (s *noteService) DeleteNote(studentID, noteID uint) error {
	if _, err := s.noteRepo.FindByIDForStudent(noteID, studentID); err != nil {
		return fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}
	if err := s.noteRepo.Delete(noteID); err != nil {
		log.Error().Err(err).Uint("noteID", noteID).Msg("DeleteNote: repository error")
		return fmt.Errorf("database error deleting note %d: %w", noteID, err)
	}
	return nil
}

func (s *noteService) SummarizeNote(ctx context.Context, studentID, noteID uint) (*dto.NoteSummaryDTO, error) {
	note, err := s.noteRepo.FindByIDForStudent(noteID, studentID)
	if err != nil {
		return nil, fmt.Errorf("note not found with ID %d: %w", noteID, err)
	}

	summary, err := s.generator.GenerateSummary(ctx, note.Title, note.Content)
	if err != nil {
		log.Error().Err(err).Uint("noteID", noteID).Msg("SummarizeNote: generation failed")
		return nil, fmt.Errorf("could not generate summary for note %d: %w", noteID, err)
	}

	generatedAt := time.Now()
	if err := s.noteRepo.UpdateSummary(note.ID, summary, generatedAt); err != nil {
		log.Error().Err(err).Uint("noteID", noteID).Msg("SummarizeNote: failed to store summary")
		return nil, fmt.Errorf("database error storing summary: %w", err)
	}

	return &dto.NoteSummaryDTO{NoteID: note.ID, Summary: summary, GeneratedAt: generatedAt}, nil
}

func noteToDTO(note *model.Note) (*dto.NoteDTO, error) {
	var d dto.NoteDTO
	if err := copier.Copy(&d, note); err != nil {
		return nil, fmt.Errorf("error preparing note response: %w", err)
	}
	return &d, nil
}

func notesToDTOs(notes []model.Note) []dto.NoteDTO {
	dtos := make([]dto.NoteDTO, 0, len(notes))
	for i := range notes {
		var d dto.NoteDTO
		if err := copier.Copy(&d, &notes[i]); err != nil {
			log.Error().Err(err).Uint("noteID", notes[i].ID).Msg("notesToDTOs: copy error")
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos
}
