package dto

import (
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/customer"
	"github.com/JHRsoftware/jp-stores-sub001/internal/domain/catalogs/supplier"
)

// CreateCustomerRequest for POST /api/customers. Code is auto-generated from
// the numbering sequence when absent.
type CreateCustomerRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	TaxID   string `json:"taxId"`
	VATNo   string `json:"vatNo"`
	Note    string `json:"note"`
}

// ToEntity converts the request to a new customer.
func (r CreateCustomerRequest) ToEntity() *customer.Customer {
	c := customer.New(r.Code, r.Name)
	c.Address = r.Address
	c.Contact = r.Contact
	c.Email = r.Email
	c.TaxID = r.TaxID
	c.VATNo = r.VATNo
	c.Note = r.Note
	return c
}

// UpdateCustomerRequest for PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	TaxID   *string `json:"taxId"`
	VATNo   *string `json:"vatNo"`
	Note    *string `json:"note"`
}

// ApplyTo patches an existing customer with the supplied fields.
func (r UpdateCustomerRequest) ApplyTo(c *customer.Customer) {
	if r.Code != nil {
		c.Code = *r.Code
	}
	if r.Name != nil {
		c.Name = *r.Name
	}
	if r.Address != nil {
		c.Address = *r.Address
	}
	if r.Contact != nil {
		c.Contact = *r.Contact
	}
	if r.Email != nil {
		c.Email = *r.Email
	}
	if r.TaxID != nil {
		c.TaxID = *r.TaxID
	}
	if r.VATNo != nil {
		c.VATNo = *r.VATNo
	}
	if r.Note != nil {
		c.Note = *r.Note
	}
}

// CreateSupplierRequest for POST /api/suppliers.
type CreateSupplierRequest struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
	Note    string `json:"note"`
}

// ToEntity converts the request to a new supplier.
func (r CreateSupplierRequest) ToEntity() *supplier.Supplier {
	s := supplier.New(r.Code, r.Name)
	s.Address = r.Address
	s.Contact = r.Contact
	s.Email = r.Email
	s.Note = r.Note
	return s
}

// UpdateSupplierRequest for PUT /api/suppliers/:id.
type UpdateSupplierRequest struct {
	Code    *string `json:"code"`
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Contact *string `json:"contact"`
	Email   *string `json:"email"`
	Note    *string `json:"note"`
}

// ApplyTo patches an existing supplier with the supplied fields.
func (r UpdateSupplierRequest) ApplyTo(s *supplier.Supplier) {
	if r.Code != nil {
		s.Code = *r.Code
	}
	if r.Name != nil {
		s.Name = *r.Name
	}
	if r.Address != nil {
		s.Address = *r.Address
	}
	if r.Contact != nil {
		s.Contact = *r.Contact
	}
	if r.Email != nil {
		s.Email = *r.Email
	}
	if r.Note != nil {
		s.Note = *r.Note
	}
}
