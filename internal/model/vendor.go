package model

import "gorm.io/gorm"

// Vendor supplies products and receives order requests.
type Vendor struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);not null" json:"name"`
	ContactPerson string `gorm:"type:varchar(100);not null" json:"contact_person"`
	Email         string `gorm:"type:varchar(100);not null" json:"email"`
	Phone         string `gorm:"type:varchar(20);not null" json:"phone"`
	Address       string `gorm:"type:varchar(255);not null" json:"address"`
}

// VendorFields holds the user-editable vendor attributes.
type VendorFields struct {
	Name          string
	ContactPerson string
	Email         string
	Phone         string
	Address       string
}

func NewVendor(f VendorFields) (*Vendor, error) {
	v := &Vendor{}
	if err := v.Assign(f); err != nil {
		return nil, err
	}
	return v, nil
}

// Assign validates f as a whole and only then overwrites the vendor.
func (v *Vendor) Assign(f VendorFields) error {
	next := *v
	next.Name = f.Name
	next.ContactPerson = f.ContactPerson
	next.Address = f.Address
	if err := next.SetEmail(f.Email); err != nil {
		return err
	}
	if err := next.SetPhone(f.Phone); err != nil {
		return err
	}
	*v = next
	return nil
}

func (v *Vendor) SetEmail(email string) error {
	if err := ValidateVendorEmail(email); err != nil {
		return err
	}
	v.Email = email
	return nil
}

func (v *Vendor) SetPhone(phone string) error {
	if err := ValidateVendorPhone(phone); err != nil {
		return err
	}
	v.Phone = phone
	return nil
}

func (v *Vendor) Validate() error {
	return firstError(
		ValidateVendorEmail(v.Email),
		ValidateVendorPhone(v.Phone),
	)
}

func (v *Vendor) BeforeSave(tx *gorm.DB) error {
	return v.Validate()
}
