package customers

// Customer is a contracted account that orders trips
type Customer struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	OrgNr        string `json:"orgnr,omitempty"`
	InvoiceEmail string `json:"invoice_email,omitempty"`
}

// CreateCustomerRequest is the payload for creating or updating a customer
type CreateCustomerRequest struct {
	Name         string `json:"name" binding:"required"`
	OrgNr        string `json:"orgnr"`
	InvoiceEmail string `json:"invoice_email" binding:"omitempty,email"`
}
