package contact

import (
	"agenda/datetime"
	"agenda/errs"
	"strings"
)

var (
	ErrEmptyName        = errs.Errorf(errs.EINVALID, "contact: name is required")
	ErrEmptyPhone       = errs.Errorf(errs.EINVALID, "contact: phone is required")
	ErrInvalidBirthdate = errs.Errorf(errs.EINVALID, "contact: birthdate must be a valid dd/mm/yyyy date")
	ErrInvalidCategory  = errs.Errorf(errs.EINVALID, "contact: category must be one of friend, family, colleague")
	ErrNotFound         = errs.Errorf(errs.ENOTFOUND, "contact: not found")
)

type Category string

const (
	CategoryFriend    Category = "friend"
	CategoryFamily    Category = "family"
	CategoryColleague Category = "colleague"
)

// DefaultCategory is assigned to contacts created without a category.
const DefaultCategory = CategoryColleague

// ParseCategory accepts any casing; an empty string yields DefaultCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if c == "" {
		return DefaultCategory, nil
	}
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryFriend, CategoryFamily, CategoryColleague:
		return true
	}
	return false
}

type Contact struct {
	Name      string   `json:"name"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email,omitempty"`
	Age       uint32   `json:"age"`
	Birthdate string   `json:"birthdate"`
	Category  Category `json:"category"`
}

// Normalize fills in defaults for unset optional fields.
func (c Contact) Normalize() Contact {
	if c.Category == "" {
		c.Category = DefaultCategory
	}
	return c
}

func (c Contact) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}

	if c.Phone == "" {
		return ErrEmptyPhone
	}

	if !datetime.ValidDate(c.Birthdate) {
		return ErrInvalidBirthdate
	}

	if !c.Category.Valid() {
		return ErrInvalidCategory
	}

	return nil
}
