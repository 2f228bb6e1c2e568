package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/paulmach/orb"

	"github.com/pkordes/eld-logbook/internal/domain"
	"github.com/pkordes/eld-logbook/internal/geocode"
	"github.com/pkordes/eld-logbook/internal/logsheet"
	"github.com/pkordes/eld-logbook/internal/mapview"
	"github.com/pkordes/eld-logbook/internal/pipeline"
)

// ---- GET /trips ----

type tripsPage struct {
	Trips    []domain.Trip
	Page     int
	Limit    int
	Total    int
	Pages    int
	HasPrev  bool
	HasNext  bool
	NextPage int
	PrevPage int
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	p := domain.NewPaginationParams(queryInt(r, "page"), queryInt(r, "limit"))
	d := pageData{Title: "Trips", Nav: "trips"}

	trips, total, err := s.trips.ListTrips(r.Context(), p)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "list trips", "error", err)
		d.Error = "Failed to load trips"
	}
	d.Data = tripsPage{
		Trips:    trips,
		Page:     p.Page,
		Limit:    p.Limit,
		Total:    total,
		Pages:    p.Pages(total),
		HasPrev:  p.Page > 1,
		HasNext:  p.HasNext(total),
		PrevPage: p.Page - 1,
		NextPage: p.Page + 1,
	}
	s.render(w, r, http.StatusOK, "trips", d)
}

// queryInt returns a pointer to the integer query parameter, or nil when it
// is absent or malformed.
func queryInt(r *http.Request, key string) *int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &v
}

// ---- GET /trip/{id} ----

type tripPage struct {
	View       pipeline.View
	RouteError string
	Map        mapWidget
}

func (s *Server) showTrip(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}
	v, err := s.pipeline.Route(r.Context(), id)
	if err != nil {
		s.loadFailed(w, r, id, err)
		return
	}

	page := tripPage{View: v, Map: s.mapWidget(v, 3, 500)}
	if v.RouteErr != nil {
		page.RouteError = "Failed to calculate route"
	}
	s.render(w, r, http.StatusOK, "trip", pageData{Title: "Trip details", Nav: "trips", Data: page})
}

// ---- GET /trip/{id}/map.json ----

func (s *Server) tripMap(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeJSONError(w, http.StatusNotFound, "trip not found")
		return
	}
	v, err := s.pipeline.Route(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "trip not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "load trip map", "trip_id", id, "error", err)
		writeJSONError(w, http.StatusBadGateway, "failed to load trip")
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	if err := json.NewEncoder(w).Encode(s.drawScene(v, 3)); err != nil {
		s.logger.ErrorContext(r.Context(), "encode map", "trip_id", id, "error", err)
	}
}

// mapWidget is the root value of the "map" template. Scene is embedded in the
// page so the browser draws without a second route computation.
type mapWidget struct {
	Scene  *mapview.GeoJSONCanvas
	Token  string
	Height int
}

func (s *Server) mapWidget(v pipeline.View, stops, height int) mapWidget {
	return mapWidget{Scene: s.drawScene(v, stops), Token: s.mapboxToken, Height: height}
}

// drawScene renders v onto a fresh GeoJSON canvas in the three-stop view, or
// in the two-stop start → dropoff overview when stops is 2.
func (s *Server) drawScene(v pipeline.View, stops int) *mapview.GeoJSONCanvas {
	canvas := mapview.NewGeoJSONCanvas()
	mapview.New(canvas, mapview.Options{Stops: stops, Labels: true, Logger: s.logger}).Update(sceneFor(v, stops))
	return canvas
}

// sceneFor converts a pipeline view into the map scene. Stops use the
// positions the legs were computed from, so fallbacks match the route. The
// two-stop scene joins both legs into one line at the pickup.
func sceneFor(v pipeline.View, stops int) mapview.Scene {
	scene := mapview.Scene{
		Start:   mapview.Stop{Coordinates: v.Start.LngLat(), Label: v.Trip.CurrentLocation},
		Pickup:  mapview.Stop{Coordinates: v.Pickup.LngLat(), Label: v.Trip.PickupLocation},
		Dropoff: mapview.Stop{Coordinates: v.Dropoff.LngLat(), Label: v.Trip.DropoffLocation},
	}
	if !v.HasRoute() {
		return scene
	}
	toPickup := lineString(v.Route.ToPickup.Geometry)
	toDropoff := lineString(v.Route.ToDropoff.Geometry)
	if stops == 2 {
		whole := append(toPickup, toDropoff[min(1, len(toDropoff)):]...)
		scene.Legs = []orb.LineString{whole}
		return scene
	}
	scene.Legs = []orb.LineString{toPickup, toDropoff}
	return scene
}

func lineString(g [][2]float64) orb.LineString {
	ls := make(orb.LineString, len(g))
	for i, p := range g {
		ls[i] = orb.Point(p)
	}
	return ls
}

// ---- GET/POST /add-trip ----

type addTripForm struct {
	CurrentLocation string
	PickupLocation  string
	DropoffLocation string
	CycleUsed       string
}

func (s *Server) addTripForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "add_trip", pageData{Title: "Add trip", Nav: "add-trip", Data: addTripForm{CycleUsed: "0"}})
}

func (s *Server) addTrip(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.renderError(w, r, http.StatusBadRequest, "Malformed form submission")
		return
	}
	form := addTripForm{
		CurrentLocation: strings.TrimSpace(r.PostFormValue("current_location")),
		PickupLocation:  strings.TrimSpace(r.PostFormValue("pickup_location")),
		DropoffLocation: strings.TrimSpace(r.PostFormValue("dropoff_location")),
		CycleUsed:       strings.TrimSpace(r.PostFormValue("current_cycle_used")),
	}
	formError := func(status int, msg string) {
		s.render(w, r, status, "add_trip", pageData{Title: "Add trip", Nav: "add-trip", Error: msg, Data: form})
	}

	cycle, err := strconv.ParseFloat(form.CycleUsed, 64)
	if err != nil {
		formError(http.StatusUnprocessableEntity, "Current cycle used must be a number")
		return
	}

	stops := [3]struct{ name, address string }{
		{"current", form.CurrentLocation},
		{"pickup", form.PickupLocation},
		{"dropoff", form.DropoffLocation},
	}
	var coords [3]domain.Coordinates
	for i, stop := range stops {
		c, err := s.geocoder.Geocode(r.Context(), stop.address)
		if err != nil {
			if !errors.Is(err, geocode.ErrNoMatch) && !errors.Is(err, domain.ErrValidation) {
				s.logger.ErrorContext(r.Context(), "geocode", "stop", stop.name, "error", err)
			}
			formError(http.StatusUnprocessableEntity, "Invalid "+stop.name+" location address")
			return
		}
		coords[i] = c
	}

	trip := domain.Trip{
		DriverID:           s.driverID,
		CurrentLocation:    form.CurrentLocation,
		PickupLocation:     form.PickupLocation,
		DropoffLocation:    form.DropoffLocation,
		CurrentCoordinates: &coords[0],
		PickupCoordinates:  &coords[1],
		DropoffCoordinates: &coords[2],
		CycleHoursUsed:     cycle,
	}
	if _, err := s.trips.CreateTrip(r.Context(), trip); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			formError(http.StatusUnprocessableEntity, validationMessage(err))
			return
		}
		s.logger.ErrorContext(r.Context(), "create trip", "error", err)
		formError(http.StatusBadGateway, "Failed to create trip")
		return
	}
	http.Redirect(w, r, "/trips", http.StatusSeeOther)
}

// validationMessage strips the wrapping prefixes from a validation error.
func validationMessage(err error) string {
	msg := err.Error()
	if i := strings.LastIndex(msg, domain.ErrValidation.Error()+": "); i >= 0 {
		return msg[i+len(domain.ErrValidation.Error())+2:]
	}
	return msg
}

// ---- GET /profile ----

func (s *Server) profile(w http.ResponseWriter, r *http.Request) {
	d := pageData{Title: "Profile", Nav: "profile"}
	driver, err := s.trips.GetDriver(r.Context(), s.driverID)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "get driver", "driver_id", s.driverID, "error", err)
		d.Error = "Failed to load driver profile"
	} else {
		d.Data = driver
	}
	s.render(w, r, http.StatusOK, "profile", d)
}

// ---- GET /log-sheets/{id} ----

type logSheetPage struct {
	View  pipeline.View
	Sheet logsheet.Sheet
	Day   int
	Map   mapWidget
}

func (s *Server) logSheet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.tripID(w, r)
	if !ok {
		return
	}
	v, err := s.pipeline.Build(r.Context(), id)
	if err != nil {
		s.loadFailed(w, r, id, err)
		return
	}

	d := pageData{Title: "Log sheet", Nav: "trips"}
	switch {
	case v.RouteErr != nil:
		d.Error = "Failed to calculate route"
	case v.LogErr != nil:
		d.Error = "Failed to generate time log"
	case v.DriverErr != nil:
		d.Error = "Failed to load driver profile"
	}
	d.Data = logSheetPage{
		View: v,
		Map:  s.mapWidget(v, 2, 400),
		Day:  1,
		Sheet: logsheet.Render(v.Log, logsheet.Meta{
			Trip:   v.Trip,
			Driver: v.Driver,
			Route:  v.Route,
		}),
	}
	s.render(w, r, http.StatusOK, "log_sheet", d)
}

// ---- helpers ----

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
