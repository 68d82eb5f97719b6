package models

type Product struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	Tags        []string `json:"tags,omitempty"`
	Rating      float64  `json:"rating,omitempty"`
	Reviews     []Review `json:"reviews,omitempty"`
}

type Review struct {
	ReviewerName string  `json:"reviewerName"`
	Date         string  `json:"date"`
	Comment      string  `json:"comment"`
	Rating       float64 `json:"rating"`
}

const (
	StateIdle    = "idle"
	StateLoading = "loading"
	StateReady   = "ready"
	StateFailed  = "failed"
)

type Carousel struct {
	Index       int      `json:"index"`
	Current     string   `json:"current,omitempty"`
	Thumbnails  []string `json:"thumbnails,omitempty"`
	Placeholder bool     `json:"placeholder,omitempty"`
}

type ReviewView struct {
	ReviewerName string `json:"reviewerName"`
	Date         string `json:"date"`
	Comment      string `json:"comment"`
	Stars        string `json:"stars"`
}

// DetailView is the assembled product-detail page state returned to the
// frontend. Exactly one of the three load states is set; product fields are
// only populated in the ready state.
type DetailView struct {
	State          string       `json:"state"`
	Error          string       `json:"error,omitempty"`
	ProductID      int          `json:"productId,omitempty"`
	Title          string       `json:"title,omitempty"`
	Price          float64      `json:"price,omitempty"`
	Category       string       `json:"category,omitempty"`
	Description    string       `json:"description,omitempty"`
	Tags           []string     `json:"tags,omitempty"`
	StockBadge     string       `json:"stockBadge,omitempty"`
	Stars          string       `json:"stars,omitempty"`
	Carousel       *Carousel    `json:"carousel,omitempty"`
	ReviewsVisible bool         `json:"reviewsVisible"`
	Reviews        []ReviewView `json:"reviews,omitempty"`
	ReviewsEmpty   string       `json:"reviewsEmptyMessage,omitempty"`
	BackLink       string       `json:"backLink,omitempty"`
}
