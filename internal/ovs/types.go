package ovs

import "fmt"

// Address is the postal address of a store.
type Address struct {
	Place  string `json:"place"`
	State  string `json:"state"`
	Street string `json:"street"`
	Zip    string `json:"zip"`
}

type Store struct {
	StoreID     string  `json:"storeId"`
	Address     Address `json:"address"`
	PhoneNumber string  `json:"phoneNumber"`
}

// VCD is a catalog item sold through a store.
type VCD struct {
	VCDID    string  `json:"vcdId"`
	StoreID  string  `json:"storeId"`
	VCDName  string  `json:"vcdName"`
	Language string  `json:"language"`
	Category string  `json:"category"`
	Genre    string  `json:"genre"`
	Rating   int     `json:"rating"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// CartItem carries the unit price captured when the item was added,
// independent of later catalog price changes.
type CartItem struct {
	VCDID        string  `json:"vcdId"`
	Quantity     int     `json:"quantity"`
	CostSnapshot float64 `json:"costSnapshot"`
}

// Subtotal is always recomputed from the snapshot, never cached.
func (i CartItem) Subtotal() float64 {
	return i.CostSnapshot * float64(i.Quantity)
}

type Cart struct {
	Items []CartItem `json:"items"`
}

func (c Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}

func (c Cart) Empty() bool { return len(c.Items) == 0 }

// Order is the response of a successful order confirmation. Payment
// references it until the charge succeeds.
type Order struct {
	OrderID      string  `json:"orderId"`
	TotalCharges float64 `json:"totalCharges"`
}

type PaymentResult struct {
	TotalCharged float64 `json:"totalCharged"`
}

type Shipping struct {
	Name         string `json:"name"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
	Country      string `json:"country"`
}

type PaymentRequest struct {
	CreditCardNumber string `json:"creditCardNumber"`
	ValidFrom        string `json:"validFrom"`
	ValidTo          string `json:"validTo"`
}

type Credentials struct {
	EmailID  string `json:"emailId"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	EmailID   string `json:"emailId"`
	PhoneNo   string `json:"phoneNo"`
	Password  string `json:"password"`
}

type RegisterResponse struct {
	UserID string `json:"userId"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// StoreFilter is forwarded to the server; store filtering is the one
// coarse query the remote API performs itself.
type StoreFilter struct {
	State string
	Place string
}

// StoreInput is the admin create/update payload for a store.
type StoreInput struct {
	Address     Address `json:"address"`
	PhoneNumber string  `json:"phoneNumber"`
}

// VCDInput is the admin create/update payload for a catalog item.
type VCDInput struct {
	VCDName  string  `json:"vcdName"`
	Language string  `json:"language"`
	Category string  `json:"category"`
	Genre    string  `json:"genre,omitempty"`
	Rating   int     `json:"rating"`
	Quantity int     `json:"quantity"`
	Cost     float64 `json:"cost"`
}

// APIError is decoded from the remote API's {"message": ...} error body.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ovs api error (status %d): %s", e.StatusCode, e.Message)
}
