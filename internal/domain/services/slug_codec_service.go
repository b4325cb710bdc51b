package services

import (
	"net/url"
	"regexp"
	"strings"
	"unicode"

	"github.com/MarajLabs/maraj-go/internal/domain/entities/catalog"
)

// Query parameter keys produced and consumed by the codec. Non-slug filters
// (minPrice, color, sortBy, ...) pass through the URL untouched and are not
// the codec's concern.
const (
	ParamRegion   = "region"
	ParamStreet   = "street"
	ParamBranch   = "branch"
	ParamCategory = "category"
)

var (
	// Keeps Arabic presentation ranges alongside latin letters, digits,
	// whitespace and hyphens; everything else is stripped before slugging.
	slugDisallowed = regexp.MustCompile(`[^\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFF}a-zA-Z0-9\s-]`)
	slugWhitespace = regexp.MustCompile(`\s+`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// SlugCodecService maps the location/category filter fields to
// human-readable URL query parameters and back. Encoding resolves ids to
// display names and slugifies them; decoding slugifies every candidate name
// and takes the first exact match. Two sibling names that collapse to the
// same slug make the round trip ambiguous; decode then resolves to whichever
// entity comes first, an accepted limitation of human-entered names.
type SlugCodecService struct{}

func NewSlugCodecService() *SlugCodecService {
	return &SlugCodecService{}
}

// Slugify lowercases and trims the text, strips characters outside the
// allowed ranges, and collapses whitespace and hyphen runs to single hyphens.
func (s *SlugCodecService) Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = slugDisallowed.ReplaceAllString(slug, "")
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugHyphenRuns.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugToTitle approximates the original free text of a category slug:
// hyphens become spaces and each word is title-cased. Lossy relative to the
// source string; a documented limitation, not corrected here.
func (s *SlugCodecService) SlugToTitle(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		r := []rune(w)
		if len(r) > 0 {
			r[0] = unicode.ToUpper(r[0])
			words[i] = string(r)
		}
	}
	return strings.Join(words, " ")
}

// Encode renders the selection's location and category fields as query
// parameters. Ids that resolve to no entity produce no parameter.
func (s *SlugCodecService) Encode(sel catalog.FilterSelection, snap *catalog.Snapshot) url.Values {
	params := url.Values{}

	if sel.RegionID != "" {
		if r := snap.RegionByID(sel.RegionID); r != nil {
			params.Set(ParamRegion, s.Slugify(r.Name))
		}
	}
	if sel.StreetID != "" {
		if st := snap.StreetByID(sel.StreetID); st != nil {
			params.Set(ParamStreet, s.Slugify(st.Name))
		}
	}
	if sel.BranchID != "" {
		if b := snap.BranchByID(sel.BranchID); b != nil {
			params.Set(ParamBranch, s.Slugify(b.Name))
		}
	}
	if sel.Category != "" {
		params.Set(ParamCategory, s.Slugify(sel.Category))
	}

	return params
}

// Decode resolves present slug parameters back to a partial selection. A
// slug matching no entity leaves that field unset: the codec fails open,
// never errors.
func (s *SlugCodecService) Decode(params url.Values, snap *catalog.Snapshot) catalog.FilterSelection {
	var sel catalog.FilterSelection

	if slug := params.Get(ParamRegion); slug != "" {
		for _, r := range snap.Regions {
			if s.Slugify(r.Name) == slug {
				sel.RegionID = r.ID
				break
			}
		}
	}
	if slug := params.Get(ParamStreet); slug != "" {
		for _, st := range snap.Streets {
			if s.Slugify(st.Name) == slug {
				sel.StreetID = st.ID
				break
			}
		}
	}
	if slug := params.Get(ParamBranch); slug != "" {
		for _, b := range snap.Branches {
			if s.Slugify(b.Name) == slug {
				sel.BranchID = b.ID
				break
			}
		}
	}
	if slug := params.Get(ParamCategory); slug != "" {
		sel.Category = s.SlugToTitle(slug)
	}

	return sel
}

// CatalogURL builds the shareable catalog path for a selection.
func (s *SlugCodecService) CatalogURL(sel catalog.FilterSelection, snap *catalog.Snapshot) string {
	return s.withQuery("/products", sel, snap)
}

// ProductURL builds the shareable path for one product, preserving the
// active filters so navigation back keeps the view.
func (s *SlugCodecService) ProductURL(productID string, sel catalog.FilterSelection, snap *catalog.Snapshot) string {
	return s.withQuery("/products/"+productID, sel, snap)
}

func (s *SlugCodecService) withQuery(base string, sel catalog.FilterSelection, snap *catalog.Snapshot) string {
	params := s.Encode(sel, snap)
	if len(params) == 0 {
		return base
	}
	return base + "?" + params.Encode()
}
