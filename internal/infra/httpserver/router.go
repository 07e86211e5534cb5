package httpserver

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/farhanmaulana/clinicdesk/internal/application/analysis"
	apppatients "github.com/farhanmaulana/clinicdesk/internal/application/patients"
	appprescriptions "github.com/farhanmaulana/clinicdesk/internal/application/prescriptions"
	appreports "github.com/farhanmaulana/clinicdesk/internal/application/reports"
	appusers "github.com/farhanmaulana/clinicdesk/internal/application/users"
	domreports "github.com/farhanmaulana/clinicdesk/internal/domain/reports"
	domusers "github.com/farhanmaulana/clinicdesk/internal/domain/users"
	"github.com/farhanmaulana/clinicdesk/internal/infra/pdf"
	"github.com/farhanmaulana/clinicdesk/internal/infra/storage"
	"github.com/farhanmaulana/clinicdesk/internal/middleware"
)

type Deps struct {
	Patients      *apppatients.Service
	Prescriptions *appprescriptions.Service
	Reports       *appreports.Service
	Users         *appusers.Service
	Dispatcher    *analysis.Dispatcher
	Tracker       *analysis.Tracker
	PDF           *pdf.Exporter
	Sessions      *middleware.SessionStore
	RateLimiter   *middleware.RateLimiter
	Health        http.HandlerFunc
	RequireAuth   bool
	MaxUpload     int64
}

type Router struct {
	deps Deps
}

func NewRouter(deps Deps) http.Handler {
	r := &Router{deps: deps}
	mux := chi.NewRouter()

	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	mux.Use(middleware.Logging)
	if deps.RateLimiter != nil {
		mux.Use(deps.RateLimiter.Middleware)
	}
	if deps.RequireAuth && deps.Sessions != nil {
		mux.Use(deps.Sessions.Middleware)
	}

	if deps.Health != nil {
		mux.Get("/health", deps.Health)
	} else {
		mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})
	}
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Post("/login", r.wrap(r.handleLogin))

		rt.Get("/patients", r.wrap(r.handleListPatients))
		rt.Post("/patients", r.wrap(r.handleCreatePatient))
		rt.Get("/patients/{id}", r.wrap(r.handleGetPatient))
		rt.Delete("/patients/{id}", r.wrap(r.handleDeletePatient))
		rt.Get("/patients/{id}/prescriptions", r.wrap(r.handleListPrescriptions))
		rt.Get("/patients/{id}/reports", r.wrap(r.handleListReports))

		rt.Post("/prescriptions", r.wrap(r.handleCreatePrescription))
		rt.Get("/prescriptions/{id}/pdf", r.wrap(r.handlePrescriptionPDF))

		rt.Post("/reports", r.wrap(r.handleUploadReport))
		rt.Post("/reports/{id}/analyze", r.wrap(r.handleAnalyzeReport))
		rt.Get("/reports/{id}/analysis", r.wrap(r.handleGetAnalysis))

		rt.Get("/files/{filename}", r.wrap(r.handleServeFile))
		rt.Get("/files/{filename}/extract-text", r.wrap(r.handleExtractText))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// badRequestError marks validation failures so wrap maps them to 400.
type badRequestError struct{ msg string }

func (e badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return badRequestError{msg: fmt.Sprintf(format, args...)}
}

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		middleware.IncrementRequests()
		if err := h(w, req); err != nil {
			middleware.IncrementRequestsFailed()
			var br badRequestError
			switch {
			case errors.As(err, &br):
				http.Error(w, br.msg, http.StatusBadRequest)
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "not found", http.StatusNotFound)
			case errors.Is(err, domreports.ErrFileNotFound):
				http.Error(w, "file not found", http.StatusNotFound)
			case errors.Is(err, domusers.ErrInvalidCredentials):
				http.Error(w, "invalid credentials", http.StatusUnauthorized)
			default:
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func urlParamInt64(req *http.Request, name string) (int64, error) {
	v, err := strconv.ParseInt(chi.URLParam(req, name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid %s", name)
	}
	return v, nil
}

// POST /v1/login
func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body")
	}

	user, err := r.deps.Users.Login(req.Context(), body.Username, body.Password)
	if err != nil {
		return err
	}

	resp := map[string]any{
		"username": user.Username,
		"role":     user.Role,
	}
	if r.deps.Sessions != nil {
		resp["token"] = r.deps.Sessions.Issue(user.Username, string(user.Role))
	}
	return writeJSON(w, http.StatusOK, resp)
}

// GET /v1/patients
func (r *Router) handleListPatients(w http.ResponseWriter, req *http.Request) error {
	list, err := r.deps.Patients.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/patients
func (r *Router) handleCreatePatient(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Name   string `json:"name"`
		Age    int    `json:"age"`
		Gender string `json:"gender"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body")
	}
	if body.Name == "" || body.Age <= 0 {
		return badRequest("name and age are required")
	}
	if err := middleware.ValidateGender(body.Gender); err != nil {
		return badRequest("%v", err)
	}

	p, err := r.deps.Patients.Create(req.Context(), apppatients.CreatePatientCommand{
		Name:   body.Name,
		Age:    body.Age,
		Gender: body.Gender,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, p)
}

// GET /v1/patients/{id}
func (r *Router) handleGetPatient(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	p, err := r.deps.Patients.Get(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, p)
}

// DELETE /v1/patients/{id}
func (r *Router) handleDeletePatient(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	if err := r.deps.Patients.Delete(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/patients/{id}/prescriptions
func (r *Router) handleListPrescriptions(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	list, err := r.deps.Prescriptions.ListByPatient(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/prescriptions
func (r *Router) handleCreatePrescription(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		PatientID  int64    `json:"patient_id"`
		DoctorName string   `json:"doctor_name"`
		Diagnosis  string   `json:"diagnosis"`
		Medicines  []string `json:"medicines"`
		Notes      string   `json:"notes"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest("invalid request body")
	}
	if body.PatientID <= 0 || body.DoctorName == "" || body.Diagnosis == "" {
		return badRequest("patient_id, doctor_name and diagnosis are required")
	}

	p, err := r.deps.Prescriptions.Create(req.Context(), appprescriptions.CreatePrescriptionCommand{
		PatientID:  body.PatientID,
		DoctorName: body.DoctorName,
		Diagnosis:  body.Diagnosis,
		Medicines:  body.Medicines,
		Notes:      body.Notes,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusCreated, p)
}

// GET /v1/prescriptions/{id}/pdf
func (r *Router) handlePrescriptionPDF(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	presc, err := r.deps.Prescriptions.Get(req.Context(), id)
	if err != nil {
		return err
	}
	patient, err := r.deps.Patients.Get(req.Context(), presc.PatientID)
	if err != nil {
		return err
	}

	data, err := r.deps.PDF.Prescription(presc, patient)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=prescription_%d.pdf", presc.ID))
	_, err = w.Write(data)
	return err
}

// GET /v1/patients/{id}/reports
func (r *Router) handleListReports(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	list, err := r.deps.Reports.ListByPatient(req.Context(), id)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/reports (multipart: patient_id, doctor_name, title, file)
func (r *Router) handleUploadReport(w http.ResponseWriter, req *http.Request) error {
	maxUpload := r.deps.MaxUpload
	if maxUpload <= 0 {
		maxUpload = 20 << 20
	}
	req.Body = http.MaxBytesReader(w, req.Body, maxUpload)
	if err := req.ParseMultipartForm(maxUpload); err != nil {
		return badRequest("invalid multipart form: %v", err)
	}

	patientID, _ := strconv.ParseInt(req.FormValue("patient_id"), 10, 64)
	doctorName := req.FormValue("doctor_name")
	title := req.FormValue("title")
	if err := middleware.ValidateReportUpload(patientID, doctorName, title); err != nil {
		return badRequest("%v", err)
	}

	file, header, err := req.FormFile("file")
	if err != nil {
		return badRequest("file is required")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return badRequest("file is empty")
	}

	rep, err := r.deps.Reports.Upload(req.Context(), appreports.UploadReportCommand{
		PatientID:  patientID,
		DoctorName: doctorName,
		Title:      title,
		Filename:   header.Filename,
		Data:       data,
	})
	if err != nil {
		return err
	}
	middleware.IncrementUploads()
	return writeJSON(w, http.StatusCreated, rep)
}

// POST /v1/reports/{id}/analyze
// Runs one dispatch for the report and records the outcome in the tracker.
// A duplicate trigger while one is in flight is refused, matching the UI
// contract of one outstanding dispatch per report.
func (r *Router) handleAnalyzeReport(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	rep, err := r.deps.Reports.Get(req.Context(), domreports.ReportID(id))
	if err != nil {
		return err
	}

	if !r.deps.Tracker.Begin(rep.ID) {
		return writeJSON(w, http.StatusConflict, map[string]any{
			"ok":      false,
			"message": "analysis already in progress",
		})
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	analysisText, fail := r.deps.Dispatcher.Dispatch(req.Context(), rep)
	if fail != nil {
		r.deps.Tracker.Fail(rep.ID, fail.Message)
		middleware.IncrementAnalysesFailed()
		return writeJSON(w, http.StatusBadGateway, map[string]any{
			"ok":      false,
			"kind":    fail.Kind,
			"message": fail.Message,
		})
	}

	r.deps.Tracker.Complete(rep.ID, analysisText)
	return writeJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"analysis": analysisText,
	})
}

// GET /v1/reports/{id}/analysis
func (r *Router) handleGetAnalysis(w http.ResponseWriter, req *http.Request) error {
	id, err := urlParamInt64(req, "id")
	if err != nil {
		return err
	}
	entry, ok := r.deps.Tracker.Get(domreports.ReportID(id))
	if !ok {
		http.Error(w, "no analysis recorded", http.StatusNotFound)
		return nil
	}
	return writeJSON(w, http.StatusOK, entry)
}

// GET /v1/files/{filename}
func (r *Router) handleServeFile(w http.ResponseWriter, req *http.Request) error {
	filename := chi.URLParam(req, "filename")
	if err := middleware.ValidateFilename(filename); err != nil {
		return badRequest("%v", err)
	}
	data, err := r.deps.Reports.FetchFile(req.Context(), filename)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", storage.ContentType(filename))
	_, err = w.Write(data)
	return err
}

// GET /v1/files/{filename}/extract-text
func (r *Router) handleExtractText(w http.ResponseWriter, req *http.Request) error {
	filename := chi.URLParam(req, "filename")
	if err := middleware.ValidateFilename(filename); err != nil {
		return badRequest("%v", err)
	}

	text, err := r.deps.Reports.ExtractText(req.Context(), filename)
	if err != nil {
		if errors.Is(err, domreports.ErrExtractFailed) {
			return badRequest("%v", err)
		}
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]any{
		"filename": filename,
		"text":     text,
		"length":   len(text),
	})
}
