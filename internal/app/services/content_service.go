package services

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/acemedformatics/acemed/internal/app/models"
	"github.com/acemedformatics/acemed/internal/app/models/dto"
	"github.com/acemedformatics/acemed/internal/app/repositories"
	"github.com/acemedformatics/acemed/internal/pkg/apperrors"
	"github.com/acemedformatics/acemed/internal/pkg/cache"
	"github.com/acemedformatics/acemed/internal/pkg/search"
	"github.com/acemedformatics/acemed/internal/pkg/sitemap"
)

// ContentService serves the public pages
type ContentService struct {
	stores  Stores
	cache   cache.Cache
	siteURL string
}

// NewContentService creates a new ContentService. A nil cache disables caching.
func NewContentService(stores Stores, c cache.Cache, siteURL string) *ContentService {
	if c == nil {
		c = cache.Nop{}
	}
	return &ContentService{
		stores:  stores,
		cache:   c,
		siteURL: siteURL,
	}
}

// Settings returns the settings row, defaults included
func (s *ContentService) Settings(ctx context.Context) (*models.Settings, error) {
	return cached(ctx, s.cache, CacheSettings, nil, func() (*models.Settings, error) {
		return s.stores.Settings.Get(ctx)
	})
}

// PublicSettings returns the settings visitors may read
func (s *ContentService) PublicSettings(ctx context.Context) (dto.PublicSettings, error) {
	settings, err := s.Settings(ctx)
	if err != nil {
		return dto.PublicSettings{}, err
	}
	return dto.NewPublicSettings(settings), nil
}

func (s *ContentService) requireFeature(ctx context.Context, feature string, enabled func(*models.Settings) bool) error {
	settings, err := s.Settings(ctx)
	if err != nil {
		return err
	}
	if !enabled(settings) {
		return apperrors.NewCustomError(apperrors.ErrFeatureDisabled, feature+" is currently disabled")
	}
	return nil
}

func programsEnabled(s *models.Settings) bool   { return s.EnablePrograms }
func researchEnabled(s *models.Settings) bool   { return s.EnableResearch }
func mentorshipEnabled(s *models.Settings) bool { return s.EnableMentorship }

func limitQuery(limit uint64) url.Values {
	if limit == 0 {
		return nil
	}
	return url.Values{"limit": {strconv.FormatUint(limit, 10)}}
}

// TeamMembers lists active members by display order
func (s *ContentService) TeamMembers(ctx context.Context, limit uint64) ([]*models.TeamMember, error) {
	return cached(ctx, s.cache, CacheTeam, limitQuery(limit), func() ([]*models.TeamMember, error) {
		return s.stores.TeamMembers.List(ctx, repositories.Query{
			Filters: map[string]interface{}{"is_active": true},
			Limit:   limit,
		})
	})
}

// Programs lists every program, oldest first
func (s *ContentService) Programs(ctx context.Context) ([]*models.Program, error) {
	if err := s.requireFeature(ctx, "programs", programsEnabled); err != nil {
		return nil, err
	}
	return s.programs(ctx)
}

func (s *ContentService) programs(ctx context.Context) ([]*models.Program, error) {
	return cached(ctx, s.cache, CachePrograms, nil, func() ([]*models.Program, error) {
		return s.stores.Programs.List(ctx, repositories.Query{})
	})
}

// ProgramCategories lists categories, oldest first
func (s *ContentService) ProgramCategories(ctx context.Context) ([]*models.ProgramCategory, error) {
	if err := s.requireFeature(ctx, "programs", programsEnabled); err != nil {
		return nil, err
	}
	return cached(ctx, s.cache, CacheCategories, nil, func() ([]*models.ProgramCategory, error) {
		return s.stores.ProgramCategories.List(ctx, repositories.Query{})
	})
}

// ProgramBySlug returns one program
func (s *ContentService) ProgramBySlug(ctx context.Context, slug string) (*models.Program, error) {
	if err := s.requireFeature(ctx, "programs", programsEnabled); err != nil {
		return nil, err
	}
	return s.programBySlug(ctx, slug)
}

func (s *ContentService) programBySlug(ctx context.Context, slug string) (*models.Program, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperrors.NewResourceNotFoundError("program not found")
	}
	return cached(ctx, s.cache, CachePrograms, url.Values{"slug": {slug}}, func() (*models.Program, error) {
		p, err := s.stores.Programs.FindBy(ctx, "slug", slug)
		if err != nil {
			if apperrors.Is(err, apperrors.ErrResourceNotFound) {
				return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("program %q not found", slug))
			}
			return nil, err
		}
		return p, nil
	})
}

// ProgramMaterials returns a program and its materials
func (s *ContentService) ProgramMaterials(ctx context.Context, slug string) (*dto.ProgramMaterialsResponse, error) {
	program, err := s.ProgramBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	materials, err := cached(ctx, s.cache, CachePrograms, url.Values{"materials": {strconv.FormatInt(program.ID, 10)}}, func() ([]*models.ProgramMaterial, error) {
		return s.stores.ProgramMaterials.List(ctx, repositories.Query{
			Filters: map[string]interface{}{"program_id": program.ID},
		})
	})
	if err != nil {
		return nil, err
	}

	return &dto.ProgramMaterialsResponse{Program: program, Materials: materials}, nil
}

// ProgramReviews lists the approved reviews of a program, newest first
func (s *ContentService) ProgramReviews(ctx context.Context, slug string) ([]*models.ProgramReview, error) {
	program, err := s.ProgramBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	return cached(ctx, s.cache, CacheReviews, url.Values{"program": {strconv.FormatInt(program.ID, 10)}}, func() ([]*models.ProgramReview, error) {
		return s.stores.ProgramReviews.List(ctx, repositories.Query{
			Filters: map[string]interface{}{
				"program_id": program.ID,
				"status":     string(models.StatusApproved),
			},
		})
	})
}

// Research returns the papers matching query and year, plus every publication year descending.
// query matches title or authors; a nil year keeps every year.
func (s *ContentService) Research(ctx context.Context, query string, year *int) (*dto.ResearchListResponse, error) {
	if err := s.requireFeature(ctx, "research", researchEnabled); err != nil {
		return nil, err
	}

	all, err := cached(ctx, s.cache, CacheResearch, nil, func() ([]*models.Research, error) {
		return s.stores.Research.List(ctx, repositories.Query{})
	})
	if err != nil {
		return nil, err
	}

	items := search.Filter(all, query, func(r *models.Research) []string {
		return []string{r.Title, r.Authors}
	})
	if year != nil {
		items = search.Where(items, func(r *models.Research) bool { return r.PublicationYear == *year })
	}
	if items == nil {
		items = []*models.Research{}
	}

	return &dto.ResearchListResponse{Items: items, Years: publicationYears(all)}, nil
}

func publicationYears(papers []*models.Research) []int {
	seen := make(map[int]struct{}, len(papers))
	years := make([]int, 0, len(papers))
	for _, p := range papers {
		if _, ok := seen[p.PublicationYear]; ok {
			continue
		}
		seen[p.PublicationYear] = struct{}{}
		years = append(years, p.PublicationYear)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Mentorship returns active mentors and mentees filtered by their searches
func (s *ContentService) Mentorship(ctx context.Context, mentorQuery, menteeQuery string) (*dto.MentorshipResponse, error) {
	if err := s.requireFeature(ctx, "mentorship", mentorshipEnabled); err != nil {
		return nil, err
	}

	page, err := cached(ctx, s.cache, CacheMentorship, nil, func() (*dto.MentorshipResponse, error) {
		active := repositories.Query{Filters: map[string]interface{}{"is_active": true}}
		mentors, err := s.stores.Mentors.List(ctx, active)
		if err != nil {
			return nil, err
		}
		mentees, err := s.stores.Mentees.List(ctx, active)
		if err != nil {
			return nil, err
		}
		return &dto.MentorshipResponse{Mentors: mentors, Mentees: mentees}, nil
	})
	if err != nil {
		return nil, err
	}

	mentors := search.Filter(page.Mentors, mentorQuery, func(m *models.Mentor) []string {
		return []string{m.FullName, m.ExpertiseArea}
	})
	mentees := search.Filter(page.Mentees, menteeQuery, func(m *models.Mentee) []string {
		return []string{m.FullName, m.FieldOfInterest}
	})
	if mentors == nil {
		mentors = []*models.Mentor{}
	}
	if mentees == nil {
		mentees = []*models.Mentee{}
	}
	return &dto.MentorshipResponse{Mentors: mentors, Mentees: mentees}, nil
}

// Collaborations lists active partners by display order
func (s *ContentService) Collaborations(ctx context.Context) ([]*models.Collaboration, error) {
	return cached(ctx, s.cache, CacheCollaborations, nil, func() ([]*models.Collaboration, error) {
		return s.stores.Collaborations.List(ctx, repositories.Query{
			Filters: map[string]interface{}{"is_active": true},
		})
	})
}

// Media lists published items newest first, optionally of one type
func (s *ContentService) Media(ctx context.Context, limit uint64, mediaType string) ([]*models.Media, error) {
	filters := map[string]interface{}{"status": string(models.PublishPublished)}
	query := limitQuery(limit)

	if mediaType != "" {
		if !models.MediaType(mediaType).Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown media type %q", mediaType))
		}
		filters["type"] = mediaType
		if query == nil {
			query = url.Values{}
		}
		query.Set("type", mediaType)
	}

	return cached(ctx, s.cache, CacheMedia, query, func() ([]*models.Media, error) {
		return s.stores.Media.List(ctx, repositories.Query{Filters: filters, Limit: limit})
	})
}

// MediaBySlug returns one published item
func (s *ContentService) MediaBySlug(ctx context.Context, slug string) (*models.Media, error) {
	return cached(ctx, s.cache, CacheMedia, url.Values{"slug": {slug}}, func() (*models.Media, error) {
		items, err := s.stores.Media.List(ctx, repositories.Query{
			Filters: map[string]interface{}{
				"slug":   slug,
				"status": string(models.PublishPublished),
			},
			Limit: 1,
		})
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			return nil, apperrors.NewResourceNotFoundError(fmt.Sprintf("media %q not found", slug))
		}
		return items[0], nil
	})
}

// Testimonials lists approved testimonials newest first
func (s *ContentService) Testimonials(ctx context.Context, limit uint64) ([]*models.Testimonial, error) {
	return cached(ctx, s.cache, CacheTestimonials, limitQuery(limit), func() ([]*models.Testimonial, error) {
		return s.stores.Testimonials.List(ctx, repositories.Query{
			Filters: map[string]interface{}{"status": string(models.StatusApproved)},
			Limit:   limit,
		})
	})
}

// About returns the about sections and the gallery
func (s *ContentService) About(ctx context.Context) (*dto.AboutResponse, error) {
	return cached(ctx, s.cache, CacheAbout, nil, func() (*dto.AboutResponse, error) {
		sections, err := s.stores.AboutSections.List(ctx, repositories.Query{})
		if err != nil {
			return nil, err
		}
		gallery, err := s.stores.AboutGallery.List(ctx, repositories.Query{})
		if err != nil {
			return nil, err
		}
		return &dto.AboutResponse{Sections: sections, Gallery: gallery}, nil
	})
}

// Sitemap renders sitemap.xml for the public routes and every program's materials page
func (s *ContentService) Sitemap(ctx context.Context) ([]byte, error) {
	return cached(ctx, s.cache, CacheSitemap, nil, func() ([]byte, error) {
		settings, err := s.Settings(ctx)
		if err != nil {
			return nil, err
		}

		var extra []string
		if settings.EnablePrograms {
			programs, err := s.programs(ctx)
			if err != nil {
				return nil, err
			}
			for _, p := range programs {
				if p.Slug != "" {
					extra = append(extra, "/programs/"+url.PathEscape(p.Slug)+"/materials")
				}
			}
		}
		return sitemap.Build(s.siteURL, extra...)
	})
}
