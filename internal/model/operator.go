package model

// Operator is a staff account allowed to sign in to the back office.
type Operator struct {
	// Primary key - Oracle IDENTITY (auto-increment)
	ID uint32 `gorm:"column:id;primaryKey;autoIncrement"`

	Email    string `gorm:"column:email;type:VARCHAR2(255);not null;uniqueIndex:idx_operator_email"` // 이메일 (unique)
	Name     string `gorm:"column:name;type:VARCHAR2(100);not null"`                                 // 이름
	Password string `gorm:"column:password;type:VARCHAR2(60);not null"`                              // 암호화된 비밀번호

	BaseEntity
}

// TableName specifies the table name for Operator
func (*Operator) TableName() string {
	return "operator"
}

// NewOperator creates a new Operator instance.
// password must already be hashed (handled in service layer)
func NewOperator(name, email, password string) *Operator {
	return &Operator{
		Name:     name,
		Email:    email,
		Password: password,
	}
}
