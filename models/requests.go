package models

// Request payloads. Update payloads use pointers so that an omitted field
// is left untouched instead of being reset to its zero value.

type BrandCreate struct {
	Name string `json:"name" validate:"required"`
}

type BrandUpdate struct {
	Name *string `json:"name" validate:"required,min=1"`
}

// Fields returns the columns explicitly set in the payload.
func (u BrandUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	return fields
}

type VehicleCreate struct {
	Name    string `json:"name" validate:"required"`
	Year    *int   `json:"year" validate:"required"`
	BrandID *uint  `json:"brand_id" validate:"required"`
}

type VehicleUpdate struct {
	Name *string `json:"name" validate:"omitnil,min=1"`
	Year *int    `json:"year" validate:"required_without=Name"`
}

// Fields returns the columns explicitly set in the payload.
func (u VehicleUpdate) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Year != nil {
		fields["year"] = *u.Year
	}
	return fields
}

// Empty reports whether neither name nor year was supplied.
func (u VehicleUpdate) Empty() bool {
	return u.Name == nil && u.Year == nil
}

// UserUpdate changes an account. Flags are honoured only on the
// superuser endpoint; see FlagFields.
type UserUpdate struct {
	Email       *string `json:"email" validate:"omitnil,email"`
	Password    *string `json:"password" validate:"omitnil,min=1"`
	IsActive    *bool   `json:"is_active"`
	IsSuperuser *bool   `json:"is_superuser"`
	IsVerified  *bool   `json:"is_verified"`
}

// FlagFields returns the account flags explicitly set in the payload.
func (u UserUpdate) FlagFields() map[string]any {
	fields := map[string]any{}
	if u.IsActive != nil {
		fields["is_active"] = *u.IsActive
	}
	if u.IsSuperuser != nil {
		fields["is_superuser"] = *u.IsSuperuser
	}
	if u.IsVerified != nil {
		fields["is_verified"] = *u.IsVerified
	}
	return fields
}
