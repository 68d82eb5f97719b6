package view

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"product-detail-bff/internal/models"
)

// LoadErrorMessage is the only failure text shown to the user, regardless of
// what went wrong upstream.
const LoadErrorMessage = "failed to load product"

const (
	BadgeInStock    = "in stock"
	BadgeOutOfStock = "out of stock"
)

const NoReviewsMessage = "no reviews yet"

var ErrIndexOutOfRange = errors.New("image index out of range")

type Fetcher interface {
	FetchProduct(ctx context.Context, id string) (*models.Product, error)
}

// Controller owns the detail-view state for one viewer session: the load
// state machine per product id plus the carousel index and reviews toggle.
//
// The load cycle per id is Loading -> Ready|Failed; Ready and Failed are
// terminal until the id changes. A Show for a new id supersedes any fetch
// still in flight: the old fetch is cancelled and its result, should it
// arrive anyway, is discarded by a generation check so a stale response can
// never overwrite newer state.
type Controller struct {
	fetcher  Fetcher
	backLink string

	mu             sync.Mutex
	gen            uint64
	cancel         context.CancelFunc
	productID      string
	state          string
	product        *models.Product
	errMsg         string
	imageIndex     int
	reviewsVisible bool
}

func NewController(fetcher Fetcher, backLink string) *Controller {
	return &Controller{
		fetcher:  fetcher,
		backLink: backLink,
		state:    models.StateIdle,
	}
}

// Show drives the load state machine for id and returns the resulting view.
// Showing the id already on screen is a no-op unless its load is still
// pending.
func (c *Controller) Show(ctx context.Context, id string) models.DetailView {
	c.mu.Lock()

	if c.productID == id && c.state != models.StateIdle && c.state != models.StateLoading {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap
	}

	if c.cancel != nil {
		c.cancel()
	}
	c.gen++
	gen := c.gen

	fetchCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.cancel = cancel

	c.productID = id
	c.state = models.StateLoading
	c.product = nil
	c.errMsg = ""
	c.imageIndex = 0
	c.reviewsVisible = false
	c.mu.Unlock()

	product, err := c.fetcher.FetchProduct(fetchCtx, id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		// Superseded by a later Show, drop the result.
		slog.Info("Discarded stale product response", "product_id", id)
		return c.snapshotLocked()
	}

	if err != nil {
		slog.Error("Product load failed", "product_id", id, "error", err)
		c.state = models.StateFailed
		c.errMsg = LoadErrorMessage
		return c.snapshotLocked()
	}

	c.state = models.StateReady
	c.product = product
	return c.snapshotLocked()
}

// ProductID reports the id the controller currently shows.
func (c *Controller) ProductID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.productID
}

func (c *Controller) NextImage() models.DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.imageCountLocked(); n > 0 {
		c.imageIndex = (c.imageIndex + 1) % n
	}
	return c.snapshotLocked()
}

func (c *Controller) PrevImage() models.DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	if n := c.imageCountLocked(); n > 0 {
		c.imageIndex = (c.imageIndex - 1 + n) % n
	}
	return c.snapshotLocked()
}

func (c *Controller) SelectImage(i int) (models.DetailView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := c.imageCountLocked()
	if n == 0 {
		// Placeholder carousel, nothing to select.
		return c.snapshotLocked(), nil
	}
	if i < 0 || i >= n {
		return models.DetailView{}, ErrIndexOutOfRange
	}
	c.imageIndex = i
	return c.snapshotLocked(), nil
}

func (c *Controller) ToggleReviews() models.DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reviewsVisible = !c.reviewsVisible
	return c.snapshotLocked()
}

func (c *Controller) Snapshot() models.DetailView {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) imageCountLocked() int {
	if c.state != models.StateReady || c.product == nil {
		return 0
	}
	return len(c.product.Images)
}

func (c *Controller) snapshotLocked() models.DetailView {
	v := models.DetailView{
		State:    c.state,
		BackLink: c.backLink,
	}

	switch c.state {
	case models.StateFailed:
		v.Error = c.errMsg
		return v
	case models.StateReady:
	default:
		return v
	}

	p := c.product
	v.ProductID = p.ID
	v.Title = p.Title
	v.Price = p.Price
	v.Category = p.Category
	v.Description = p.Description
	v.Tags = p.Tags
	v.Stars = Stars(p.Rating)

	if p.Stock > 0 {
		v.StockBadge = BadgeInStock
	} else {
		v.StockBadge = BadgeOutOfStock
	}

	if len(p.Images) == 0 {
		v.Carousel = &models.Carousel{Placeholder: true}
	} else {
		v.Carousel = &models.Carousel{
			Index:      c.imageIndex,
			Current:    p.Images[c.imageIndex],
			Thumbnails: p.Images,
		}
	}

	v.ReviewsVisible = c.reviewsVisible
	if c.reviewsVisible {
		if len(p.Reviews) == 0 {
			v.ReviewsEmpty = NoReviewsMessage
		}
		for _, r := range p.Reviews {
			v.Reviews = append(v.Reviews, models.ReviewView{
				ReviewerName: r.ReviewerName,
				Date:         r.Date,
				Comment:      r.Comment,
				Stars:        Stars(r.Rating),
			})
		}
	}

	return v
}
