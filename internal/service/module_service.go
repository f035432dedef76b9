package service

import (
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/rs/zerolog/log"
)

type ModuleService interface {
	CreateModule(studentID uint, req dto.ModuleCreateDTO) (*dto.ModuleDTO, error)
	GetModules(studentID uint) ([]dto.ModuleDTO, error)
	UpdateModule(studentID, moduleID uint, req dto.ModuleCreateDTO) (*dto.ModuleDTO, error)
	DeleteModule(studentID, moduleID uint) error
}

type moduleService struct {
	moduleRepo repository.ModuleRepository
}

func NewModuleService(moduleRepo repository.ModuleRepository) ModuleService {
	return &moduleService{moduleRepo: moduleRepo}
}

func (s *moduleService) CreateModule(studentID uint, req dto.ModuleCreateDTO) (*dto.ModuleDTO, error) {
	module := model.Module{
		StudentID:   studentID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.moduleRepo.Create(&module); err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("CreateModule: repository error")
		return nil, fmt.Errorf("database error creating module: %w", err)
	}
	return moduleToDTO(&module)
}

func (s *moduleService) GetModules(studentID uint) ([]dto.ModuleDTO, error) {
	modules, err := s.moduleRepo.FindAllByStudent(studentID)
	if err != nil {
		log.Error().Err(err).Uint("studentID", studentID).Msg("GetModules: repository error")
		return nil, fmt.Errorf("error fetching modules: %w", err)
	}
	dtos := make([]dto.ModuleDTO, 0, len(modules))
	for i := range modules {
		var d dto.ModuleDTO
		if err := copier.Copy(&d, &modules[i]); err != nil {
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *moduleService) UpdateModule(studentID, moduleID uint, req dto.ModuleCreateDTO) (*dto.ModuleDTO, error) {
	module, err := s.moduleRepo.FindByIDForStudent(moduleID, studentID)
	if err != nil {
		return nil, fmt.Errorf("module not found with ID %d: %w", moduleID, err)
	}
	module.Name = req.Name
	module.Description = req.Description
	if err := s.moduleRepo.Update(module); err != nil {
		log.Error().Err(err).Uint("moduleID", moduleID).Msg("UpdateModule: repository error")
		return nil, fmt.Errorf("database error updating module: %w", err)
	}
	return moduleToDTO(module)
}

func (s *moduleService) DeleteModule(studentID, moduleID uint) error {
	if _, err := s.moduleRepo.FindByIDForStudent(moduleID, studentID); err != nil {
		return fmt.Errorf("module not found with ID %d: %w", moduleID, err)
	}
	if err := s.moduleRepo.Delete(moduleID); err != nil {
		log.Error().Err(err).Uint("moduleID", moduleID).Msg("DeleteModule: repository error")
		return fmt.Errorf("database error deleting module %d: %w", moduleID, err)
	}
	return nil
}

func moduleToDTO(module *model.Module) (*dto.ModuleDTO, error) {
	var d dto.ModuleDTO
	if err := copier.Copy(&d, module); err != nil {
		return nil, fmt.Errorf("error preparing module response: %w", err)
	}
	return &d, nil
}
