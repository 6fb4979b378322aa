package models

type Field string

const (
	FieldName         Field = "name"
	FieldGoal         Field = "goal"
	FieldDisorders    Field = "disorders"
	FieldWeight       Field = "weight"
	FieldHeightFeet   Field = "heightFeet"
	FieldHeightInches Field = "heightInches"
	FieldHeightCm     Field = "heightCm"
	FieldAge          Field = "age"
	FieldWhatsApp     Field = "whatsapp"
	FieldEmail        Field = "email"
	FieldVillage      Field = "village"
	FieldTaluka       Field = "taluka"
	FieldDistrict     Field = "district"

	// HeightGroup carries the "feet/inches or centimeters" error. It is not a record field.
	HeightGroup Field = "height"
)

// FieldOrder is the declaration order of FormRecord.
var FieldOrder = []Field{
	FieldName,
	FieldGoal,
	FieldDisorders,
	FieldWeight,
	FieldHeightFeet,
	FieldHeightInches,
	FieldHeightCm,
	FieldAge,
	FieldWhatsApp,
	FieldEmail,
	FieldVillage,
	FieldTaluka,
	FieldDistrict,
}

const (
	GoalWeightLoss     = "Weight Loss"
	GoalWeightGain     = "Weight Gain"
	GoalWeightMaintain = "Weight Maintain"
)

var Goals = []string{GoalWeightLoss, GoalWeightGain, GoalWeightMaintain}

type FormRecord struct {
	Name         string `json:"name" form:"name" mapstructure:"name"`
	Goal         string `json:"goal" form:"goal" mapstructure:"goal"`
	Disorders    string `json:"disorders" form:"disorders" mapstructure:"disorders"`
	Weight       string `json:"weight" form:"weight" mapstructure:"weight"`
	HeightFeet   string `json:"heightFeet" form:"heightFeet" mapstructure:"heightFeet"`
	HeightInches string `json:"heightInches" form:"heightInches" mapstructure:"heightInches"`
	HeightCm     string `json:"heightCm" form:"heightCm" mapstructure:"heightCm"`
	Age          string `json:"age" form:"age" mapstructure:"age"`
	WhatsApp     string `json:"whatsapp" form:"whatsapp" mapstructure:"whatsapp"`
	Email        string `json:"email" form:"email" mapstructure:"email"`
	Village      string `json:"village" form:"village" mapstructure:"village"`
	Taluka       string `json:"taluka" form:"taluka" mapstructure:"taluka"`
	District     string `json:"district" form:"district" mapstructure:"district"`
}

func IsRecordField(field Field) bool {
	for _, candidate := range FieldOrder {
		if candidate == field {
			return true
		}
	}
	return false
}

func IsHeightField(field Field) bool {
	switch field {
	case FieldHeightFeet, FieldHeightInches, FieldHeightCm:
		return true
	default:
		return false
	}
}

func IsValidGoal(goal string) bool {
	for _, candidate := range Goals {
		if candidate == goal {
			return true
		}
	}
	return false
}

// Value returns the raw value of field, or "" for fields the record does not hold.
func (record FormRecord) Value(field Field) string {
	switch field {
	case FieldName:
		return record.Name
	case FieldGoal:
		return record.Goal
	case FieldDisorders:
		return record.Disorders
	case FieldWeight:
		return record.Weight
	case FieldHeightFeet:
		return record.HeightFeet
	case FieldHeightInches:
		return record.HeightInches
	case FieldHeightCm:
		return record.HeightCm
	case FieldAge:
		return record.Age
	case FieldWhatsApp:
		return record.WhatsApp
	case FieldEmail:
		return record.Email
	case FieldVillage:
		return record.Village
	case FieldTaluka:
		return record.Taluka
	case FieldDistrict:
		return record.District
	default:
		return ""
	}
}

// SetValue reports false when field is not part of the record.
func (record *FormRecord) SetValue(field Field, value string) bool {
	switch field {
	case FieldName:
		record.Name = value
	case FieldGoal:
		record.Goal = value
	case FieldDisorders:
		record.Disorders = value
	case FieldWeight:
		record.Weight = value
	case FieldHeightFeet:
		record.HeightFeet = value
	case FieldHeightInches:
		record.HeightInches = value
	case FieldHeightCm:
		record.HeightCm = value
	case FieldAge:
		record.Age = value
	case FieldWhatsApp:
		record.WhatsApp = value
	case FieldEmail:
		record.Email = value
	case FieldVillage:
		record.Village = value
	case FieldTaluka:
		record.Taluka = value
	case FieldDistrict:
		record.District = value
	default:
		return false
	}
	return true
}
