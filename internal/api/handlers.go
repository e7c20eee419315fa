package api

import (
	"errors"
	"net/http"
	"os"

	"backend/internal/engine"

	"github.com/labstack/echo/v4"
)

// Handler exposes the election dataset over HTTP. The dataset is immutable
// after startup, so handlers are plain reads with no locking.
type Handler struct {
	data *engine.Dataset
}

func NewHandler(data *engine.Dataset) *Handler {
	return &Handler{data: data}
}

func (h *Handler) RegisterRoutes(e *echo.Echo, staticDir, dataDir string) {
	api := e.Group("/api")
	api.GET("", h.Index)
	api.GET("/years", h.GetYears)
	api.GET("/constituencies", h.GetConstituencies)
	api.GET("/parties", h.GetParties)
	api.GET("/states", h.GetStates)
	api.GET("/election/:year", h.GetElectionData)
	api.GET("/constituency/:name", h.GetConstituencyData)
	api.GET("/party/:name", h.GetPartyData)
	api.GET("/compare/years", h.CompareYears)
	api.GET("/compare/parties", h.CompareParties)
	api.GET("/turnout", h.GetTurnoutData)
	api.GET("/winmargin", h.GetWinMarginData)
	api.GET("/search", h.Search)
	api.GET("/party-trends", h.GetPartyTrends)
	api.GET("/state-analysis", h.GetStateAnalysis)
	api.GET("/state-party-trends", h.GetStatePartyTrends)
	api.GET("/constituency-types", h.GetConstituencyTypes)

	// Source CSVs deployed by copydata, served as plain assets.
	if dataDir != "" {
		e.Static("/data", dataDir)
	}

	// Frontend assets, when deployed alongside the API.
	if staticDir != "" {
		if _, err := os.Stat(staticDir); err == nil {
			e.Static("/", staticDir)
		}
	}
}

func errorJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"error": msg})
}

func (h *Handler) Index(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Lok Sabha Elections API",
		"version": "1.0",
		"endpoints": []string{
			"/api/years",
			"/api/constituencies",
			"/api/parties",
			"/api/election/<year>",
			"/api/constituency/<name>",
			"/api/party/<name>",
			"/api/compare/years",
			"/api/compare/parties",
			"/api/turnout",
		},
	})
}

func (h *Handler) GetYears(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Years())
}

func (h *Handler) GetConstituencies(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Constituencies())
}

func (h *Handler) GetParties(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.Parties())
}

func (h *Handler) GetStates(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.States())
}

func (h *Handler) GetElectionData(c echo.Context) error {
	data, err := h.data.ElectionData(c.Param("year"))
	if err != nil {
		var nf *engine.NotFoundError
		if errors.As(err, &nf) {
			return errorJSON(c, http.StatusNotFound, nf.Message)
		}
		return err
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) GetConstituencyData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.ConstituencyData(c.Param("name")))
}

func (h *Handler) GetPartyData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.PartyData(c.Param("name")))
}

func (h *Handler) CompareYears(c echo.Context) error {
	years := c.QueryParams()["years"]
	if len(years) == 0 {
		return errorJSON(c, http.StatusBadRequest, "No years specified")
	}
	data, err := h.data.CompareYears(years)
	if err != nil {
		var nf *engine.NotFoundError
		if errors.As(err, &nf) {
			return errorJSON(c, http.StatusNotFound, nf.Message)
		}
		return err
	}
	return c.JSON(http.StatusOK, data)
}

func (h *Handler) CompareParties(c echo.Context) error {
	parties := c.QueryParams()["parties"]
	if len(parties) == 0 {
		return errorJSON(c, http.StatusBadRequest, "No parties specified")
	}
	return c.JSON(http.StatusOK, h.data.CompareParties(parties))
}

func (h *Handler) GetTurnoutData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.TurnoutData())
}

func (h *Handler) GetWinMarginData(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.WinMarginData())
}

func (h *Handler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return errorJSON(c, http.StatusBadRequest, "No search query provided")
	}
	return c.JSON(http.StatusOK, h.data.Search(query))
}

func (h *Handler) GetPartyTrends(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.PartyTrends())
}

// GetStateAnalysis serves one state when ?state= is given, all states
// otherwise.
func (h *Handler) GetStateAnalysis(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" {
		return c.JSON(http.StatusOK, h.data.AllStatesData())
	}
	return c.JSON(http.StatusOK, h.data.StateData(state))
}

func (h *Handler) GetStatePartyTrends(c echo.Context) error {
	state := c.QueryParam("state")
	if state == "" {
		return errorJSON(c, http.StatusBadRequest, "State parameter is required")
	}
	return c.JSON(http.StatusOK, h.data.StatePartyTrends(state, c.QueryParam("party")))
}

func (h *Handler) GetConstituencyTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, h.data.ConstituencyTypeData(c.QueryParam("type")))
}
