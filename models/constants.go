package models

// Field bounds shared by the schema and the request validators.
const (
	NameMaxLength        = 100
	DescriptionMaxLength = 1000
	ImagePathMaxLength   = 255
	EmailMaxLength       = 255
	PhoneMaxLength       = 40
	PasswordHashMaxLength = 255
	PasswordMinLength    = 6
	PasswordMaxLength    = 100
	RoleNameMaxLength    = 20

	LogLevelMaxLength   = 20
	LogMessageMaxLength = 255

	// One order line holds between 1 and 100 units of a single food.
	QuantityMin = 1
	QuantityMax = 100
)
