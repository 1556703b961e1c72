// Package domain holds the entity records the console works with.
// Entities belong to the backend; every value here is an ephemeral
// local copy identified by a stable opaque id.
package domain

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleSupport  UserRole = "SUPPORT"
)

type CmsStatus string

const (
	CmsDraft     CmsStatus = "DRAFT"
	CmsPublished CmsStatus = "PUBLISHED"
	CmsArchived  CmsStatus = "ARCHIVED"
)

type Category struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

type ProductImage struct {
	URL       string  `json:"url"`
	Filename  *string `json:"filename,omitempty"`
	MimeType  *string `json:"mimeType,omitempty"`
	UpdatedAt *string `json:"updatedAt,omitempty"`
}

type Product struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       float64       `json:"price"`
	Description *string       `json:"description,omitempty"`
	CategoryID  string        `json:"categoryId,omitempty"`
	Category    *Category     `json:"category,omitempty"`
	Image       *ProductImage `json:"image,omitempty"`
}

type OrderProduct struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type Order struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	Total     float64        `json:"total"`
	Status    string         `json:"status"`
	CreatedAt *string        `json:"createdAt,omitempty"`
	UpdatedAt *string        `json:"updatedAt,omitempty"`
	Products  []OrderProduct `json:"products,omitempty"`
}

type User struct {
	ID    string   `json:"id"`
	Email string   `json:"email"`
	Name  *string  `json:"name,omitempty"`
	Role  UserRole `json:"role"`
}

type Address struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type CartItem struct {
	Quantity int     `json:"quantity"`
	Product  Product `json:"product"`
}

type Cart struct {
	UserID string     `json:"userId"`
	Items  []CartItem `json:"items"`
	Total  float64    `json:"total"`
}

type Wishlist struct {
	UserID   string    `json:"userId"`
	Products []Product `json:"products"`
}

type Review struct {
	ID         string  `json:"id"`
	ProductID  string  `json:"productId"`
	Rating     float64 `json:"rating"`
	ReviewText *string `json:"reviewText,omitempty"`
	CreatedAt  string  `json:"createdAt"`
}

type CmsPage struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Excerpt     *string   `json:"excerpt,omitempty"`
	Body        string    `json:"body,omitempty"`
	Status      CmsStatus `json:"status"`
	UpdatedAt   *string   `json:"updatedAt,omitempty"`
	PublishedAt *string   `json:"publishedAt,omitempty"`
}

type SupportMetrics struct {
	TotalRevenue  float64
	Orders        int
	Products      int
	Customers     int
	AverageRating *float64
}

type CustomerProfile struct {
	User      *User
	Orders    []Order
	Addresses []Address
	Cart      *Cart
	Wishlist  *Wishlist
	Reviews   []Review
}

// ImpersonationSession is what the backend returns when a support
// agent impersonates a customer.
type ImpersonationSession struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}
