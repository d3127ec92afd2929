// Package site holds the landing page content and its embedded assets.
package site

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

//go:embed manifest.webmanifest
var manifest []byte

// ManifestContentType is served with the web manifest
const ManifestContentType = "application/manifest+json"

// PreviewImage is the social preview, 1200x630
const (
	PreviewImage       = "/static/ag-preview.png"
	PreviewImageWidth  = 1200
	PreviewImageHeight = 630
)

// Business is one card on the landing page
type Business struct {
	Name        string
	Tagline     string
	Description string
}

// Content is everything the landing page shows apart from the form
type Content struct {
	Name          string
	ShortName     string
	Description   string
	Kicker        string
	Headline      string
	Lede          string
	About         string
	ContactIntro  string
	ContactEmail  string
	Businesses    []Business
	InDevelopment []Business
}

// DefaultContent returns the published copy of the site
func DefaultContent(name, description, contactEmail string) Content {
	return Content{
		Name:        name,
		ShortName:   "Avuncular",
		Description: description,
		Kicker:      name,
		Headline:    "Practical ventures with a human center of gravity.",
		Lede: "We operate and invest in enduring businesses that compound through " +
			"stewardship, partnership, and calm execution.",
		About: name + " brings local talent and skill under one warm roof. We grow " +
			"businesses that are grounded, local, and quietly compounding, balancing " +
			"patient capital with pragmatic execution. Each project shares a bias " +
			"toward service, craftsmanship, and open source software.",
		ContactIntro: "Introduce yourself, share what you are building, or tell us where " +
			"you could use a steady partner. We read every message and typically " +
			"reply within two business days.",
		ContactEmail: contactEmail,
		Businesses: []Business{
			{
				Name:    "Bitcoin Treasury Solutions",
				Tagline: "Training and Consulting for Businesses.",
				Description: "Structured education, tailored coaching, and strategic consulting " +
					"to help Australian businesses and professionals assess, adopt, manage, " +
					"and even accept Bitcoin within their treasury and payment operations.",
			},
			{
				Name:    "Aussie Bitcoin Merchants",
				Tagline: "Onboard small retailers and get them on the map.",
				Description: "Helping small Australian retailers onboard to the Bitcoin network " +
					"by providing practical resources, guidance, and support, along with an " +
					"easy way to add their business to BTC Map through OpenStreetMap.",
			},
		},
		InDevelopment: []Business{
			{
				Name:        "BoltBar",
				Tagline:     "The POS that loves to save.",
				Description: "A Point of Sale application that leverages both traditional payments and bitcoin.",
			},
		},
	}
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded assets rooted at the static directory
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// static is embedded at build time
		panic(err)
	}
	return http.FS(sub)
}

// Manifest returns the web app manifest
func Manifest() []byte {
	return manifest
}

// Form is what the browser controller needs, serialized as JSON attributes
type Form struct {
	Endpoint string
	Rules    string
	Success  string
	Failure  string
}

// Page is the data rendered by templates/index.html
type Page struct {
	Content
	BaseURL            string
	PreviewImage       string
	PreviewImageWidth  int
	PreviewImageHeight int
	Year               int
	Form               Form
}

// NewPage combines the content with the per-render values
func NewPage(content Content, baseURL string, year int, form Form) Page {
	return Page{
		Content:            content,
		BaseURL:            baseURL,
		PreviewImage:       PreviewImage,
		PreviewImageWidth:  PreviewImageWidth,
		PreviewImageHeight: PreviewImageHeight,
		Year:               year,
		Form:               form,
	}
}
