package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var ErrInvalid = errors.New("invalid patient details")

var validate = validator.New()

// PatientDetails are the user-editable fields of a patient.
type PatientDetails struct {
	Name    string   `validate:"required,max=100"`
	Phone   string   `validate:"required,number,min=3,max=20"`
	Email   string   `validate:"omitempty,email,max=254"`
	Address string   `validate:"max=200"`
	Tags    []string `validate:"dive,required,alphanum,max=30"`
}

// Validate checks the details against the field constraints.
func (d PatientDetails) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Patient is an immutable patient record. Appointments refer to it by ID.
type Patient struct {
	id        uuid.UUID
	name      string
	phone     string
	email     string
	address   string
	tags      []string
	createdAt time.Time
}

// NewPatient creates a patient with a fresh ID.
func NewPatient(details PatientDetails) (Patient, error) {
	details = normalize(details)
	if err := details.Validate(); err != nil {
		return Patient{}, err
	}
	return Patient{
		id:        uuid.New(),
		name:      details.Name,
		phone:     details.Phone,
		email:     details.Email,
		address:   details.Address,
		tags:      details.Tags,
		createdAt: time.Now().UTC(),
	}, nil
}

// RehydratePatient recreates a patient from persisted state.
func RehydratePatient(id uuid.UUID, details PatientDetails, createdAt time.Time) (Patient, error) {
	details = normalize(details)
	if err := details.Validate(); err != nil {
		return Patient{}, err
	}
	return Patient{
		id:        id,
		name:      details.Name,
		phone:     details.Phone,
		email:     details.Email,
		address:   details.Address,
		tags:      details.Tags,
		createdAt: createdAt,
	}, nil
}

// Getters
func (p Patient) ID() uuid.UUID        { return p.id }
func (p Patient) Name() string         { return p.name }
func (p Patient) Phone() string        { return p.phone }
func (p Patient) Email() string        { return p.email }
func (p Patient) Address() string      { return p.address }
func (p Patient) Tags() []string       { return slices.Clone(p.tags) }
func (p Patient) CreatedAt() time.Time { return p.createdAt }

// Details returns the editable fields of the patient.
func (p Patient) Details() PatientDetails {
	return PatientDetails{
		Name:    p.name,
		Phone:   p.phone,
		Email:   p.email,
		Address: p.address,
		Tags:    p.Tags(),
	}
}

// WithDetails returns an edited copy keeping the patient's identity.
func (p Patient) WithDetails(details PatientDetails) (Patient, error) {
	return RehydratePatient(p.id, details, p.createdAt)
}

// IsSamePatient reports whether both records describe the same person:
// the same ID, or the same name ignoring case and repeated spaces.
func (p Patient) IsSamePatient(other Patient) bool {
	return p.id == other.id || normalizeName(p.name) == normalizeName(other.name)
}

// Equals compares every field.
func (p Patient) Equals(other Patient) bool {
	return p.id == other.id &&
		p.name == other.name &&
		p.phone == other.phone &&
		p.email == other.email &&
		p.address == other.address &&
		slices.Equal(p.tags, other.tags)
}

// HasTag reports whether the patient carries tag, ignoring case.
func (p Patient) HasTag(tag string) bool {
	return slices.ContainsFunc(p.tags, func(t string) bool {
		return strings.EqualFold(t, tag)
	})
}

// MatchesKeyword reports whether keyword appears in the name or equals a tag, ignoring case.
func (p Patient) MatchesKeyword(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return false
	}
	for _, word := range strings.Fields(strings.ToLower(p.name)) {
		if word == keyword {
			return true
		}
	}
	return p.HasTag(keyword)
}

func (p Patient) String() string {
	return p.name
}

func normalize(d PatientDetails) PatientDetails {
	d.Name = strings.Join(strings.Fields(d.Name), " ")
	d.Phone = strings.TrimSpace(d.Phone)
	d.Email = strings.TrimSpace(d.Email)
	d.Address = strings.TrimSpace(d.Address)
	tags := make([]string, 0, len(d.Tags))
	for _, tag := range d.Tags {
		tag = strings.TrimSpace(tag)
		if !slices.Contains(tags, tag) {
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	d.Tags = tags
	return d
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
