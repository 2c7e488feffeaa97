package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"timeos/internal/domain"
	"timeos/internal/report"
	"timeos/internal/usecase"
)

// HTTPServer returns a configured http.Server exposing the JSON API.
// Call ListenAndServe on the returned server in a goroutine and Shutdown it
// on exit. Requests authenticate with an X-Access-Code header; the local
// timer is deliberately not exposed here, it belongs to one device.
func (a *App) HTTPServer(addr string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("POST /api/login", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			AccessCode string `json:"access_code"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		user, err := a.Auth.Login(r.Context(), req.AccessCode)
		if err != nil {
			writeError(w, authStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, userPayload(*user))
	})

	mux.HandleFunc("GET /api/companies", func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		companies, err := a.Tracking.LoadCompanies(r.Context(), *user)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, companies)
	})

	mux.HandleFunc("POST /api/companies", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		var c domain.Company
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, err := a.Admin.AddCompany(r.Context(), c)
		if err != nil {
			writeError(w, saveStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	})

	mux.HandleFunc("PUT /api/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		var c domain.Company
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		c.ID = r.PathValue("id")
		if err := a.Admin.UpdateCompany(r.Context(), c); err != nil {
			writeError(w, saveStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("DELETE /api/companies/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		if err := a.Admin.DeleteCompany(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/users", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		users, err := a.Admin.Users(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, userPayload(u))
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /api/users", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		u, err := decodeUser(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		id, err := a.Admin.SaveUser(r.Context(), u)
		if err != nil {
			writeError(w, saveStatus(err), err)
			return
		}
		writeJSON(w, http.StatusCreated, map[string]string{"id": id})
	})

	mux.HandleFunc("PUT /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		u, err := decodeUser(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		u.ID = r.PathValue("id")
		if _, err := a.Admin.SaveUser(r.Context(), u); err != nil {
			writeError(w, saveStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("DELETE /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		if err := a.Admin.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("GET /api/entries", func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		var (
			entries []domain.TimeEntry
			err     error
		)
		if user.Role == domain.RoleAdmin && r.URL.Query().Get("all") == "1" {
			entries, err = a.Admin.AllEntries(r.Context())
		} else {
			entries, err = a.Tracking.Entries(r.Context(), user.ID)
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	})

	mux.HandleFunc("POST /api/entries", func(w http.ResponseWriter, r *http.Request) {
		user, ok := a.authenticate(w, r)
		if !ok {
			return
		}
		var req struct {
			CompanyID   string `json:"company_id"`
			Description string `json:"description"`
			Seconds     int64  `json:"seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		entry, err := a.Tracking.Submit(r.Context(), *user, req.CompanyID, req.Description, req.Seconds)
		if errors.Is(err, usecase.ErrShortInterval) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "skipped", "reason": err.Error()})
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusCreated, entry)
	})

	mux.HandleFunc("PATCH /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.authenticate(w, r); !ok {
			return
		}
		var req struct {
			Description string `json:"description"`
			Seconds     int64  `json:"seconds"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.Tracking.EditEntry(r.Context(), r.PathValue("id"), req.Description, req.Seconds); err != nil {
			writeError(w, saveStatus(err), err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("DELETE /api/entries/{id}", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.authenticate(w, r); !ok {
			return
		}
		if err := a.Tracking.DeleteEntry(r.Context(), r.PathValue("id")); err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// CSV export of all entries, optionally filtered by company name.
	mux.HandleFunc("GET /api/export.csv", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		entries, err := a.Admin.AllEntries(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		if company := r.URL.Query().Get("company"); company != "" {
			entries = report.FilterByCompany(entries, company)
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="time_entries.csv"`)
		if err := report.WriteCSV(w, entries); err != nil {
			a.log.Error("csv export failed", slog.String("error", err.Error()))
		}
	})

	mux.HandleFunc("GET /api/summary", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		entries, err := a.Admin.AllEntries(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		text, err := a.Summarizer.ExecutiveSummary(r.Context(), entries)
		if err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"summary": text})
	})

	mux.HandleFunc("POST /api/timesheet/send", func(w http.ResponseWriter, r *http.Request) {
		if _, ok := a.requireAdmin(w, r); !ok {
			return
		}
		var req struct {
			CompanyID string `json:"company_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err := a.SendTimesheet(r.Context(), req.CompanyID); err != nil {
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	srv := &http.Server{Addr: addr, Handler: loggingMiddleware(a.log, mux)}
	a.log.Info("http api server configured", slog.String("addr", addr))
	return srv
}

// authenticate resolves the X-Access-Code header to a user, writing an
// error response on failure.
func (a *App) authenticate(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, err := a.Auth.Login(r.Context(), r.Header.Get("X-Access-Code"))
	if err != nil {
		writeError(w, authStatus(err), err)
		return nil, false
	}
	return user, true
}

func (a *App) requireAdmin(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := a.authenticate(w, r)
	if !ok {
		return nil, false
	}
	if user.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, errors.New("admin access required"))
		return nil, false
	}
	return user, true
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrInvalidAccessCode):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrAccountBlocked):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func saveStatus(err error) int {
	switch {
	case errors.Is(err, usecase.ErrEmptyName),
		errors.Is(err, usecase.ErrEmptyAccessCode),
		errors.Is(err, usecase.ErrEmptyDescription),
		errors.Is(err, usecase.ErrNonPositiveDuration):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func decodeUser(r *http.Request) (domain.User, error) {
	var req struct {
		Name               string   `json:"name"`
		Title              string   `json:"title"`
		Role               string   `json:"role"`
		AccessCode         string   `json:"access_code"`
		AssignedCompanyIDs []string `json:"assigned_company_ids"`
		Blocked            bool     `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return domain.User{}, err
	}
	return domain.User{
		Name:               req.Name,
		Title:              req.Title,
		Role:               domain.Role(req.Role),
		AccessCode:         req.AccessCode,
		AssignedCompanyIDs: req.AssignedCompanyIDs,
		Blocked:            req.Blocked,
	}, nil
}

// userPayload omits the access code from responses.
func userPayload(u domain.User) map[string]any {
	return map[string]any{
		"id":                   u.ID,
		"name":                 u.Name,
		"title":                u.Title,
		"role":                 u.Role,
		"assigned_company_ids": u.AssignedCompanyIDs,
		"blocked":              u.Blocked,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{
		"status": "error",
		"error":  err.Error(),
	})
}

// loggingMiddleware provides basic request logging.
func loggingMiddleware(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote", r.RemoteAddr),
			slog.Duration("dur", time.Since(start)),
		)
	})
}

// SendTimesheet renders the company's timesheet and mails it to the
// client's address on record.
func (a *App) SendTimesheet(ctx context.Context, companyID string) error {
	companies, err := a.Admin.Companies(ctx)
	if err != nil {
		return err
	}
	var company *domain.Company
	for i := range companies {
		if companies[i].ID == companyID {
			company = &companies[i]
			break
		}
	}
	if company == nil {
		return errors.New("company not found")
	}
	if company.ClientEmail == "" {
		return errors.New("company has no client email")
	}

	entries, err := a.Admin.AllEntries(ctx)
	if err != nil {
		return err
	}
	sheet := report.NewTimesheet(company.Name, company.ClientReference,
		report.FilterByCompany(entries, company.Name), time.Now())

	var buf bytes.Buffer
	if err := sheet.RenderHTML(&buf); err != nil {
		return err
	}
	return a.Mailer.SendTimesheet(ctx, company.ClientEmail, sheet.Subject(), buf.String())
}
