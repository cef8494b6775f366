package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/go-chi/chi/v5"

	"github.com/tingeapp/tinge/internal/archive"
	"github.com/tingeapp/tinge/internal/config"
	"github.com/tingeapp/tinge/internal/models"
	"github.com/tingeapp/tinge/internal/service"
	"github.com/tingeapp/tinge/internal/store"
	"github.com/tingeapp/tinge/internal/suntime"
)

// Handler exposes the theme operations over the control API.
type Handler struct {
	themes   *store.Store
	apply    *service.ApplyService
	packager *archive.Packager
	location config.LocationConfig
	version  string
	logger   *slog.Logger
}

// NewHandler creates the API handler.
func NewHandler(themes *store.Store, apply *service.ApplyService, packager *archive.Packager, location config.LocationConfig, version string, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		themes:   themes,
		apply:    apply,
		packager: packager,
		location: location,
		version:  version,
		logger:   logger,
	}
}

// Register registers the huma operations.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "health",
		Method:      http.MethodGet,
		Path:        "/api/v1/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, h.Health)

	huma.Register(api, huma.Operation{
		OperationID: "listThemes",
		Method:      http.MethodGet,
		Path:        "/api/v1/themes",
		Summary:     "List all themes",
		Description: "Returns bundled and custom themes with the active one marked",
		Tags:        []string{"Themes"},
	}, h.ListThemes)

	huma.Register(api, huma.Operation{
		OperationID: "getTheme",
		Method:      http.MethodGet,
		Path:        "/api/v1/themes/{id}",
		Summary:     "Get one theme including its palette",
		Tags:        []string{"Themes"},
	}, h.GetTheme)

	huma.Register(api, huma.Operation{
		OperationID: "applyTheme",
		Method:      http.MethodPost,
		Path:        "/api/v1/themes/{id}/apply",
		Summary:     "Switch to a theme",
		Tags:        []string{"Themes"},
	}, h.ApplyTheme)

	huma.Register(api, huma.Operation{
		OperationID: "importThemeFromURL",
		Method:      http.MethodPost,
		Path:        "/api/v1/themes/import-url",
		Summary:     "Import a theme archive from a URL",
		Tags:        []string{"Themes"},
	}, h.ImportThemeFromURL)

	huma.Register(api, huma.Operation{
		OperationID: "getState",
		Method:      http.MethodGet,
		Path:        "/api/v1/state",
		Summary:     "Get the active-theme state",
		Tags:        []string{"State"},
	}, h.GetState)

	huma.Register(api, huma.Operation{
		OperationID: "getSuntimes",
		Method:      http.MethodGet,
		Path:        "/api/v1/suntimes",
		Summary:     "Compute sunrise and sunset",
		Description: "Uses the configured location unless lat/lon query parameters are given",
		Tags:        []string{"State"},
	}, h.GetSuntimes)
}

// RegisterChiRoutes registers the raw-body upload route huma cannot model.
func (h *Handler) RegisterChiRoutes(r chi.Router) {
	r.Post("/api/v1/themes/import", h.ImportTheme)
}

// HealthOutput is the health check response.
type HealthOutput struct {
	Body struct {
		Status  string `json:"status"`
		Version string `json:"version"`
	}
}

// Health reports liveness.
func (h *Handler) Health(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	out := &HealthOutput{}
	out.Body.Status = "ok"
	out.Body.Version = h.version
	return out, nil
}

// ThemeSummary is one row of the theme listing.
type ThemeSummary struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Author  string             `json:"author,omitempty"`
	IsLight bool               `json:"isLight"`
	Source  models.ThemeSource `json:"source"`
	Active  bool               `json:"active"`
}

// ListThemesOutput is the theme listing response.
type ListThemesOutput struct {
	Body struct {
		Themes []ThemeSummary `json:"themes"`
	}
}

// ListThemes lists every theme.
func (h *Handler) ListThemes(ctx context.Context, _ *struct{}) (*ListThemesOutput, error) {
	themes, err := h.themes.List(ctx)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing themes", err)
	}

	active := h.apply.ActiveID()
	out := &ListThemesOutput{}
	out.Body.Themes = make([]ThemeSummary, 0, len(themes))
	for _, t := range themes {
		out.Body.Themes = append(out.Body.Themes, ThemeSummary{
			ID:      t.ID,
			Name:    t.Name,
			Author:  t.Author,
			IsLight: t.IsLight,
			Source:  t.Source,
			Active:  t.ID == active,
		})
	}
	return out, nil
}

// GetThemeInput identifies a theme by store id.
type GetThemeInput struct {
	ID string `path:"id" doc:"Theme id (directory name)"`
}

// GetThemeOutput is the full theme response.
type GetThemeOutput struct {
	Body models.Theme
}

// GetTheme returns one theme with its full palette.
func (h *Handler) GetTheme(ctx context.Context, in *GetThemeInput) (*GetThemeOutput, error) {
	theme, err := h.themes.Get(ctx, in.ID)
	if err != nil {
		if errors.Is(err, models.ErrThemeNotFound) {
			return nil, huma.Error404NotFound("theme not found", err)
		}
		return nil, huma.Error500InternalServerError("getting theme", err)
	}
	return &GetThemeOutput{Body: *theme}, nil
}

// ApplyThemeOutput returns the post-apply state.
type ApplyThemeOutput struct {
	Body struct {
		Theme ThemeSummary            `json:"theme"`
		State models.ActiveThemeState `json:"state"`
	}
}

// ApplyTheme switches the active theme.
func (h *Handler) ApplyTheme(ctx context.Context, in *GetThemeInput) (*ApplyThemeOutput, error) {
	theme, err := h.apply.Apply(ctx, in.ID, models.TriggerAPI)
	if err != nil {
		if errors.Is(err, models.ErrThemeNotFound) {
			return nil, huma.Error404NotFound("theme not found", err)
		}
		return nil, huma.Error500InternalServerError("applying theme", err)
	}

	out := &ApplyThemeOutput{}
	out.Body.Theme = ThemeSummary{
		ID:      theme.ID,
		Name:    theme.Name,
		Author:  theme.Author,
		IsLight: theme.IsLight,
		Source:  theme.Source,
		Active:  true,
	}
	out.Body.State = h.apply.State()
	return out, nil
}

// GetStateOutput is the active-theme state response.
type GetStateOutput struct {
	Body models.ActiveThemeState
}

// GetState returns the persisted active-theme state.
func (h *Handler) GetState(_ context.Context, _ *struct{}) (*GetStateOutput, error) {
	return &GetStateOutput{Body: h.apply.State()}, nil
}

// SuntimesInput optionally overrides the configured location. Pointers
// distinguish an absent parameter from the legitimate coordinate 0.
type SuntimesInput struct {
	Latitude  *float64 `query:"lat" required:"false" minimum:"-90" maximum:"90" doc:"Override latitude; lat and lon must be given together"`
	Longitude *float64 `query:"lon" required:"false" minimum:"-180" maximum:"180" doc:"Override longitude; lat and lon must be given together"`
}

// SuntimesOutput is the computed sunrise/sunset response.
type SuntimesOutput struct {
	Body struct {
		Sunrise time.Time `json:"sunrise"`
		Sunset  time.Time `json:"sunset"`
		Daytime bool      `json:"daytime"`
	}
}

// GetSuntimes computes today's sunrise and sunset.
func (h *Handler) GetSuntimes(_ context.Context, in *SuntimesInput) (*SuntimesOutput, error) {
	var lat, lon float64
	switch {
	case in.Latitude != nil && in.Longitude != nil:
		lat, lon = *in.Latitude, *in.Longitude
	case in.Latitude != nil || in.Longitude != nil:
		return nil, huma.Error422UnprocessableEntity("lat and lon must be given together")
	default:
		if !h.location.Set() {
			return nil, huma.Error422UnprocessableEntity("no location configured and none given")
		}
		lat, lon = h.location.Latitude, h.location.Longitude
	}

	now := time.Now()
	times := suntime.Times(lat, lon, now)
	out := &SuntimesOutput{}
	out.Body.Sunrise = times.Sunrise
	out.Body.Sunset = times.Sunset
	out.Body.Daytime = suntime.IsDaytime(lat, lon, now)
	return out, nil
}

// ImportURLInput carries the archive URL.
type ImportURLInput struct {
	Body struct {
		URL string `json:"url" format:"uri" doc:"http(s) URL of a .mactheme archive"`
	}
}

// ImportOutput identifies the installed theme.
type ImportOutput struct {
	Body struct {
		ID string `json:"id"`
	}
}

// ImportThemeFromURL downloads and installs an archive.
func (h *Handler) ImportThemeFromURL(ctx context.Context, in *ImportURLInput) (*ImportOutput, error) {
	id, err := h.packager.ImportFromURL(ctx, in.Body.URL)
	if err != nil {
		return nil, importError(err)
	}
	out := &ImportOutput{}
	out.Body.ID = id
	return out, nil
}

// ImportTheme installs an archive uploaded as the raw request body.
func (h *Handler) ImportTheme(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := h.packager.Import(r.Context(), r.Body)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, models.ErrInvalidArchive) {
			status = http.StatusUnprocessableEntity
		}
		h.logger.Warn("archive upload rejected", slog.String("error", err.Error()))
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func importError(err error) error {
	switch {
	case errors.Is(err, models.ErrUnsupportedScheme),
		errors.Is(err, models.ErrEmptyDownload),
		errors.Is(err, models.ErrInvalidArchive):
		return huma.Error422UnprocessableEntity("archive rejected", err)
	default:
		return huma.Error500InternalServerError("importing archive", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
