package model

// Member is a car wash membership record.
// ID is assigned by the caller (tier letter + number, e.g. B001) and doubles as the document key.
type Member struct {
	ID           string `gorm:"column:id;type:VARCHAR2(20);primaryKey" json:"id"`
	Name         string `gorm:"column:name;type:VARCHAR2(100)" json:"name"`
	Car          string `gorm:"column:car;type:VARCHAR2(200)" json:"car"`
	IsActive     bool   `gorm:"column:is_active" json:"isActive"`
	ValidPayment bool   `gorm:"column:valid_payment" json:"validPayment"`
	Notes        string `gorm:"column:notes;type:VARCHAR2(1000)" json:"notes"`
}

// TableName specifies the collection name for Member
func (*Member) TableName() string {
	return "users"
}

// NewMember creates a new Member instance
func NewMember(id, name, car string, isActive, validPayment bool, notes string) *Member {
	return &Member{
		ID:           id,
		Name:         name,
		Car:          car,
		IsActive:     isActive,
		ValidPayment: validPayment,
		Notes:        notes,
	}
}

// MemberPatch is a partial update. Nil fields are left untouched.
type MemberPatch struct {
	Name         *string `json:"name,omitempty"`
	Car          *string `json:"car,omitempty"`
	IsActive     *bool   `json:"isActive,omitempty"`
	ValidPayment *bool   `json:"validPayment,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (p MemberPatch) IsEmpty() bool {
	return p.Name == nil && p.Car == nil && p.IsActive == nil && p.ValidPayment == nil && p.Notes == nil
}

// Apply merges the supplied fields into m (shallow merge).
func (p MemberPatch) Apply(m *Member) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Car != nil {
		m.Car = *p.Car
	}
	if p.IsActive != nil {
		m.IsActive = *p.IsActive
	}
	if p.ValidPayment != nil {
		m.ValidPayment = *p.ValidPayment
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
}

// Columns returns the supplied fields keyed by column name.
// A map is used so gorm also writes zero values (false, "").
func (p MemberPatch) Columns() map[string]any {
	cols := make(map[string]any, 5)
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.Car != nil {
		cols["car"] = *p.Car
	}
	if p.IsActive != nil {
		cols["is_active"] = *p.IsActive
	}
	if p.ValidPayment != nil {
		cols["valid_payment"] = *p.ValidPayment
	}
	if p.Notes != nil {
		cols["notes"] = *p.Notes
	}
	return cols
}
