package httpserver

import (
	"agenda/appointment"
	"agenda/contact"
	"agenda/errs"
	"agenda/record"
	"strconv"
)

type ContactRequest struct {
	Name      string `json:"name" validate:"required"`
	Phone     string `json:"phone" validate:"required"`
	Email     string `json:"email"`
	Age       uint32 `json:"age"`
	Birthdate string `json:"birthdate" validate:"ddmmyyyy"`
	Category  string `json:"category"`
}

// ToContact parses the category in any casing; an empty category becomes
// the default.
func (r ContactRequest) ToContact() (contact.Contact, error) {
	category, err := contact.ParseCategory(r.Category)
	if err != nil {
		return contact.Contact{}, err
	}
	return contact.Contact{
		Name:      r.Name,
		Phone:     r.Phone,
		Email:     r.Email,
		Age:       r.Age,
		Birthdate: r.Birthdate,
		Category:  category,
	}, nil
}

type AppointmentRequest struct {
	Title       string `json:"title" validate:"required"`
	Date        string `json:"date" validate:"ddmmyyyy"`
	Time        string `json:"time" validate:"hhmm"`
	Description string `json:"description"`
	Priority    string `json:"priority"`
	Duration    int32  `json:"duration"`
}

func (r AppointmentRequest) ToAppointment() (appointment.Appointment, error) {
	priority, err := appointment.ParsePriority(r.Priority)
	if err != nil {
		return appointment.Appointment{}, err
	}
	return appointment.Appointment{
		Title:       r.Title,
		Date:        r.Date,
		Time:        r.Time,
		Description: r.Description,
		Priority:    priority,
		Duration:    r.Duration,
	}, nil
}

type ContactResponse struct {
	ID record.ID `json:"id"`
	contact.Contact
}

type AppointmentResponse struct {
	ID record.ID `json:"id"`
	appointment.Appointment
}

type CreatedResponse struct {
	ID record.ID `json:"id"`
}

type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}

var errInvalidID = errs.Errorf(errs.EINVALID, "id must be a non-negative 32-bit integer")

func parseID(raw string) (record.ID, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errInvalidID
	}
	return record.ID(id), nil
}
