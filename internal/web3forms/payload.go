package web3forms

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/fitform/internal/models"
)

const DefaultNoDisordersLabel = "No any"

// Payload is the JSON document the submission endpoint receives. Field names are fixed by the
// downstream mail template.
type Payload struct {
	AccessKey      string `json:"access_key"`
	Name           string `json:"name"`
	Goal           string `json:"goal"`
	Disorders      string `json:"disorders"`
	Weight         string `json:"weight"`
	Height         string `json:"height"`
	Age            string `json:"age"`
	WhatsApp       string `json:"whatsapp"`
	Email          string `json:"email"`
	Address        string `json:"address"`
	NativeLanguage string `json:"nativeLanguage"`
	Subject        string `json:"subject"`
	FromName       string `json:"from_name"`
}

func (client *Client) BuildPayload(submission models.Submission) Payload {
	record := submission.Record
	return Payload{
		AccessKey:      client.accessKey,
		Name:           record.Name,
		Goal:           record.Goal,
		Disorders:      disordersOrLabel(record.Disorders, submission.NoDisordersLabel),
		Weight:         record.Weight,
		Height:         FormatHeight(record),
		Age:            record.Age,
		WhatsApp:       record.WhatsApp,
		Email:          record.Email,
		Address:        FormatAddress(record),
		NativeLanguage: submission.Variant.NativeName,
		Subject:        client.subjectPrefix + " - " + record.Name,
		FromName:       client.fromName,
	}
}

// FormatHeight renders all three representations; missing parts stay empty, e.g. "ft 9.8in (25cm)".
func FormatHeight(record models.FormRecord) string {
	return fmt.Sprintf("%sft %sin (%scm)", record.HeightFeet, record.HeightInches, record.HeightCm)
}

func FormatAddress(record models.FormRecord) string {
	return fmt.Sprintf("Village: %s, Taluka: %s, District: %s", record.Village, record.Taluka, record.District)
}

func disordersOrLabel(disorders string, label string) string {
	if strings.TrimSpace(disorders) != "" {
		return disorders
	}
	if strings.TrimSpace(label) != "" {
		return label
	}
	return DefaultNoDisordersLabel
}
