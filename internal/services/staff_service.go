package services

import (
	"electra/internal/domain"
	"electra/internal/repos"
	"electra/internal/validate"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type StaffService struct {
	Staff *repos.StaffRepo
}

func NewStaffService(staff *repos.StaffRepo) *StaffService {
	return &StaffService{Staff: staff}
}

type StaffInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

func (s *StaffService) Create(in StaffInput) (domain.Staff, error) {
	var details []string
	name, ok := validate.Name(in.Name)
	if !ok {
		details = append(details, "name is required")
	}
	email, ok := validate.Email(in.Email)
	if !ok {
		details = append(details, "email must be a valid email")
	}
	if !validate.Password(in.Password) {
		details = append(details, "password must be at least 6 characters long")
	}
	role := in.Role
	if role == "" {
		role = domain.RoleStaff
	} else if _, ok := validate.Role(role); !ok {
		details = append(details, "role must be admin or staff")
	}
	if in.Phone != "" {
		if _, ok := validate.Phone(in.Phone); !ok {
			details = append(details, "phone must be a valid phone number")
		}
	}
	if err := validationErr(details); err != nil {
		return domain.Staff{}, err
	}

	if taken, err := s.Staff.EmailTaken(email, ""); err != nil {
		return domain.Staff{}, err
	} else if taken {
		return domain.Staff{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), 10)
	if err != nil {
		return domain.Staff{}, err
	}
	st := domain.Staff{
		ID:    uuid.NewString(),
		Name:  name,
		Email: email,
		Hash:  string(hash),
		Role:  role,
		Phone: in.Phone,
	}
	if err := s.Staff.Create(&st); err != nil {
		return domain.Staff{}, err
	}
	return st, nil
}

type StaffUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
}

// Update rewrites profile fields; the password is only re-hashed when one
// is supplied.
func (s *StaffService) Update(id string, in StaffUpdate) (domain.Staff, error) {
	st, err := s.Staff.Get(id)
	if err != nil {
		return domain.Staff{}, err
	}
	st.Hash = "" // leave stored hash untouched unless a new password arrives

	var details []string
	if in.Name != nil {
		if v, ok := validate.Name(*in.Name); ok {
			st.Name = v
		} else {
			details = append(details, "name is required")
		}
	}
	if in.Email != nil {
		v, ok := validate.Email(*in.Email)
		if !ok {
			details = append(details, "email must be a valid email")
		} else {
			if taken, err := s.Staff.EmailTaken(v, id); err != nil {
				return domain.Staff{}, err
			} else if taken {
				return domain.Staff{}, ErrEmailTaken
			}
			st.Email = v
		}
	}
	if in.Password != nil && *in.Password != "" {
		if !validate.Password(*in.Password) {
			details = append(details, "password must be at least 6 characters long")
		} else {
			hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), 10)
			if err != nil {
				return domain.Staff{}, err
			}
			st.Hash = string(hash)
		}
	}
	if in.Role != nil {
		if v, ok := validate.Role(*in.Role); ok {
			st.Role = v
		} else {
			details = append(details, "role must be admin or staff")
		}
	}
	if in.Phone != nil {
		if *in.Phone == "" {
			st.Phone = ""
		} else if v, ok := validate.Phone(*in.Phone); ok {
			st.Phone = v
		} else {
			details = append(details, "phone must be a valid phone number")
		}
	}
	if err := validationErr(details); err != nil {
		return domain.Staff{}, err
	}

	if err := s.Staff.Update(st); err != nil {
		return domain.Staff{}, err
	}
	return s.Staff.Get(id)
}

// Delete removes a staff record. The acting staff member cannot delete
// their own account.
func (s *StaffService) Delete(id, actorID string) error {
	if id == actorID {
		return ErrSelfDelete
	}
	return s.Staff.Delete(id)
}

func (s *StaffService) Get(id string) (domain.Staff, error) {
	return s.Staff.Get(id)
}

func (s *StaffService) List() ([]domain.Staff, error) {
	return s.Staff.List()
}
