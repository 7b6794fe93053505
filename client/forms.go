package client

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/utils"
)

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

func (fe FieldErrors) required(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		fe[field] = msg
	}
}

var hrefPattern = regexp.MustCompile(`^https?://`)

type CategoryForm struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
}

// NewCategoryForm fills the slug from the name the way the editor does while typing.
func NewCategoryForm(name, description string) CategoryForm {
	return CategoryForm{Name: name, Slug: utils.Slugify(name), Description: description}
}

func (f CategoryForm) Validate() error {
	fe := FieldErrors{}
	fe.required("name", f.Name, "Name is required")
	if strings.TrimSpace(f.Slug) == "" {
		fe["slug"] = "Slug is required"
	} else if !utils.IsValidSlug(f.Slug) {
		fe["slug"] = "Slug must contain only lowercase letters, numbers, and hyphens"
	}
	return fe.orNil()
}

type DestinationForm struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	CategoryID  uint    `json:"categoryId"`
}

func (f DestinationForm) Validate() error {
	fe := FieldErrors{}
	fe.required("title", f.Title, "Title is required")
	fe.required("description", f.Description, "Description is required")
	if f.Price <= 0 {
		fe["price"] = "Price must be greater than 0"
	}
	if f.CategoryID == 0 {
		fe["categoryId"] = "Category is required"
	}
	return fe.orNil()
}

type PackageForm struct {
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	CategoryID    uint    `json:"categoryId,omitempty"`
	DestinationID uint    `json:"destinationId,omitempty"`
}

func (f PackageForm) Validate() error {
	fe := FieldErrors{}
	fe.required("title", f.Title, "Title is required")
	fe.required("description", f.Description, "Description is required")
	if f.Price <= 0 {
		fe["price"] = "Price must be greater than 0"
	}
	return fe.orNil()
}

type LocationForm struct {
	Title         string `json:"title"`
	Image         string `json:"image,omitempty"`
	HrefLink      string `json:"hrefLink,omitempty"`
	Description   string `json:"description,omitempty"`
	DestinationID uint   `json:"destinationId"`
}

func (f LocationForm) Validate() error {
	fe := FieldErrors{}
	fe.required("title", f.Title, "Title is required")
	if f.DestinationID == 0 {
		fe["destinationId"] = "Destination is required"
	}
	if link := strings.TrimSpace(f.HrefLink); link != "" && !hrefPattern.MatchString(link) {
		fe["hrefLink"] = "Link must start with http:// or https://"
	}
	return fe.orNil()
}

type ContentForm struct {
	Title         string    `json:"title"`
	SubTitle      string    `json:"subTitle,omitempty"`
	Description   string    `json:"description"`
	Image1        string    `json:"image1,omitempty"`
	Image2        string    `json:"image2,omitempty"`
	Image3        string    `json:"image3,omitempty"`
	Image4        string    `json:"image4,omitempty"`
	Image5        string    `json:"image5,omitempty"`
	ImageMain     string    `json:"imageMain,omitempty"`
	DateAvailable time.Time `json:"dateAvailable,omitzero"`
	IsAvailable   bool      `json:"isAvailable"`
	DestinationID uint      `json:"destinationId"`
}

func (f ContentForm) Validate() error {
	fe := FieldErrors{}
	fe.required("title", f.Title, "Title is required")
	fe.required("description", f.Description, "Description is required")
	if f.DestinationID == 0 {
		fe["destinationId"] = "Destination is required"
	}
	if f.DateAvailable.IsZero() {
		fe["dateAvailable"] = "Date available is required"
	}
	return fe.orNil()
}
