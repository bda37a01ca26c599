package templates

import (
	"github.com/a-h/templ"

	"github.com/jmylchreest/studio/internal/portfolio"
	"github.com/jmylchreest/studio/internal/theme"
)

// SiteName is shown in the title and header.
const SiteName = "Studio"

// Page carries what every page needs from the layout.
type Page struct {
	Title string
	Path  string
	Theme theme.Theme
}

// HomeData feeds the landing page. Error is shown inline when the portfolio
// could not be fetched.
type HomeData struct {
	Featured   []portfolio.Item
	Statistics *portfolio.Statistics
	Error      string
}

// ListData feeds the portfolio listing.
type ListData struct {
	Items      []portfolio.Item
	Types      []string
	ActiveType string
	Error      string
}

// DetailData feeds a project page. Related holds other items of the same type.
type DetailData struct {
	Item    portfolio.Item
	Related []portfolio.Item
}

type navLink struct {
	href  templ.SafeURL
	label string
}

var nav = []navLink{
	{"/", "Home"},
	{"/about", "About"},
	{"/services", "Services"},
	{"/portfolio", "Portfolio"},
	{"/briefing", "Briefing"},
}

type service struct {
	name, summary string
}

var services = []service{
	{"Branding", "Identity systems, naming support, guidelines."},
	{"Editorial", "Books, magazines, reports and their digital editions."},
	{"Digital", "Websites, interfaces and motion for launch campaigns."},
	{"3D", "Product visualisation and interactive models."},
}
