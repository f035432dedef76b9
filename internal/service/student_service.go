package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jinzhu/copier"
	"github.com/ndmanh/studynotes/config"
	"github.com/ndmanh/studynotes/internal/dto"
	"github.com/ndmanh/studynotes/internal/model"
	"github.com/ndmanh/studynotes/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

// StudentService covers admin account management plus login.
type StudentService interface {
	RegisterStudent(req dto.StudentCreateDTO) (*dto.StudentDTO, error)
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
	GetStudents() ([]dto.StudentDTO, error)
	GetStudent(id uint) (*dto.StudentDTO, error)
	UpdateStudent(id uint, req dto.StudentUpdateDTO) (*dto.StudentDTO, error)
	DeleteStudent(id uint) error
}

type studentService struct {
	studentRepo repository.StudentRepository
	cfg         *config.Config
}

func NewStudentService(studentRepo repository.StudentRepository, cfg *config.Config) StudentService {
	return &studentService{studentRepo: studentRepo, cfg: cfg}
}

func (s *studentService) RegisterStudent(req dto.StudentCreateDTO) (*dto.StudentDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := model.Student{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := s.studentRepo.Create(&student); err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("RegisterStudent: repository error")
		return nil, fmt.Errorf("database error creating student: %w", err)
	}
	return studentToDTO(&student)
}

func (s *studentService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	student, err := s.studentRepo.FindByEmail(req.Email)
	if err != nil {
		log.Warn().Str("email", req.Email).Msg("Login: unknown email")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte(req.Password)); err != nil {
		log.Warn().Str("email", req.Email).Msg("Login: password mismatch")
		return nil, ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"sub": student.ID,
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Auth.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("error signing token: %w", err)
	}

	resp := &dto.LoginResponseDTO{Token: token}
	studentDTO, err := studentToDTO(student)
	if err != nil {
		return nil, err
	}
	resp.Student = *studentDTO
	return resp, nil
}

func (s *studentService) GetStudents() ([]dto.StudentDTO, error) {
	students, err := s.studentRepo.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("GetStudents: repository error")
		return nil, fmt.Errorf("error fetching students: %w", err)
	}
	dtos := make([]dto.StudentDTO, 0, len(students))
	for i := range students {
		var d dto.StudentDTO
		if err := copier.Copy(&d, &students[i]); err != nil {
			continue
		}
		dtos = append(dtos, d)
	}
	return dtos, nil
}

func (s *studentService) GetStudent(id uint) (*dto.StudentDTO, error) {
	student, err := s.studentRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("student not found with ID %d: %w", id, err)
	}
	return studentToDTO(student)
}

func (s *studentService) UpdateStudent(id uint, req dto.StudentUpdateDTO) (*dto.StudentDTO, error) {
	student, err := s.studentRepo.FindByID(id)
	if err != nil {
		return nil, fmt.Errorf("student not found with ID %d: %w", id, err)
	}
	if req.Name != "" {
		student.Name = req.Name
	}
	if req.Email != "" {
		student.Email = req.Email
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("error hashing password: %w", err)
		}
		student.PasswordHash = string(hash)
	}
	if err := s.studentRepo.Update(student); err != nil {
		log.Error().Err(err).Uint("studentID", id).Msg("UpdateStudent: repository error")
		return nil, fmt.Errorf("database error updating student: %w", err)
	}
	return studentToDTO(student)
}

func (s *studentService) DeleteStudent(id uint) error {
	if _, err := s.studentRepo.FindByID(id); err != nil {
		return fmt.Errorf("student not found with ID %d: %w", id, err)
	}
	if err := s.studentRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("studentID", id).Msg("DeleteStudent: repository error")
		return fmt.Errorf("database error deleting student %d: %w", id, err)
	}
	return nil
}

func studentToDTO(student *model.Student) (*dto.StudentDTO, error) {
	var d dto.StudentDTO
	if err := copier.Copy(&d, student); err != nil {
		return nil, fmt.Errorf("error preparing student response: %w", err)
	}
	return &d, nil
}
