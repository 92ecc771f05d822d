package bee

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

type webManifest struct {
	Name            string         `json:"name"`
	ShortName       string         `json:"short_name"`
	Description     string         `json:"description,omitempty"`
	StartURL        string         `json:"start_url"`
	BackgroundColor string         `json:"background_color"`
	ThemeColor      string         `json:"theme_color"`
	Display         string         `json:"display"`
	Icons           []manifestIcon `json:"icons"`
}

type manifestIcon struct {
	Src   string `json:"src"`
	Sizes string `json:"sizes"`
	Type  string `json:"type"`
}

func (a *App) manifest() webManifest {
	meta := a.Meta.Metadata()
	m := webManifest{
		Name:            meta.Title,
		ShortName:       meta.Title,
		Description:     meta.Description,
		StartURL:        "/",
		BackgroundColor: "#ffffff",
		ThemeColor:      "#663399",
		Display:         "minimal-ui",
	}
	for _, size := range a.Icons.Sizes() {
		n := strconv.Itoa(size)
		m.Icons = append(m.Icons, manifestIcon{
			Src:   "/icons/" + iconFileName(size),
			Sizes: n + "x" + n,
			Type:  "image/png",
		})
	}
	return m
}

func (a *App) handleManifest(c echo.Context) error {
	c.Response().Header().Set(echo.HeaderContentType, "application/manifest+json")
	return c.JSON(http.StatusOK, a.manifest())
}
