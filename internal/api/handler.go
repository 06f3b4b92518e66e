package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/rekening-koran/internal/extractor"
	"github.com/insightdelivered/rekening-koran/internal/models"
	"github.com/insightdelivered/rekening-koran/internal/parser"
	"github.com/insightdelivered/rekening-koran/internal/writer"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success  bool               `json:"success"`
	Error    string             `json:"error,omitempty"`
	ID       string             `json:"id,omitempty"`
	Bank     string             `json:"bank,omitempty"`
	BankName string             `json:"bankName,omitempty"`
	Columns  []string           `json:"columns,omitempty"`
	Records  []models.Record    `json:"records"`
	Metadata map[string]string  `json:"metadata,omitempty"`
	Count    int                `json:"count"`
	Pages    []models.PageTrace `json:"pages,omitempty"`
	Version  string             `json:"version,omitempty"`
}

// OpenFunc turns uploaded bytes into a page source.
type OpenFunc func(data []byte) (parser.PageSource, error)

// OpenPDF is the OpenFunc backed by the PDF extractor.
func OpenPDF(data []byte) (parser.PageSource, error) {
	return extractor.OpenBytes(data)
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	Version       string
	IncludeHeader bool
	AllowOrigins  string
	Open          OpenFunc
	Logger        logrus.FieldLogger
	Registry      *prometheus.Registry
	metrics       *Metrics
}

// NewHandler returns a handler with its own metrics registry.
func NewHandler(version string, log logrus.FieldLogger) *Handler {
	reg := prometheus.NewRegistry()
	return &Handler{
		Version:       version,
		IncludeHeader: true,
		AllowOrigins:  "*",
		Open:          OpenPDF,
		Logger:        log,
		Registry:      reg,
		metrics:       NewMetrics(reg),
	}
}

// NewApp builds the fiber application with the API routes mounted.
func NewApp(h *Handler, maxUploadMB int) *fiber.App {
	if maxUploadMB <= 0 {
		maxUploadMB = 32
	}
	app := fiber.New(fiber.Config{
		AppName:   "rekening-koran",
		BodyLimit: maxUploadMB << 20,
	})
	h.RegisterRoutes(app)
	return app
}

// RegisterRoutes sets up the HTTP routes.
func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: h.AllowOrigins,
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Content-Type",
	}))
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/convert", h.HandleConvert)
	if h.Registry != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.Registry, promhttp.HandlerOpts{})))
	}
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"engine":  "fiber",
		"version": h.Version,
	})
}

// HandleConvert accepts a multipart upload in field "file" plus optional
// "bank", "format" (json, csv or xlsx) and "header" fields.
func (h *Handler) HandleConvert(c *fiber.Ctx) error {
	id := uuid.NewString()
	log := h.logger().WithField("request", id)
	start := time.Now()

	fh, err := c.FormFile("file")
	if err != nil {
		return h.fail(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.EqualFold(filepath.Ext(fh.Filename), ".pdf") {
		return h.fail(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	var bank models.BankType
	if b := c.FormValue("bank"); b != "" {
		if bank, err = parser.ParseBank(b); err != nil {
			return h.fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	format := strings.ToLower(c.FormValue("format", "json"))
	var out writer.Writer
	if format != "json" {
		if out, err = writer.New(format, h.includeHeader(c)); err != nil {
			return h.fail(c, fiber.StatusBadRequest, err.Error())
		}
	}

	data, err := readUpload(fh)
	if err != nil {
		return h.fail(c, fiber.StatusInternalServerError, "Failed to read uploaded file.")
	}

	src, err := h.Open(data)
	if err != nil {
		h.metrics.observe(string(bank), "unreadable", 0, time.Since(start).Seconds())
		return h.fail(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	st, err := parser.Convert(src, bank, parser.WithLogger(log))
	if err != nil {
		h.metrics.observe(string(bank), "failed", 0, time.Since(start).Seconds())
		return h.fail(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("Parsing failed: %v", err))
	}

	h.metrics.observe(string(st.Bank), "ok", len(st.Records), time.Since(start).Seconds())
	log.WithFields(logrus.Fields{
		"file":    fh.Filename,
		"bank":    st.Bank,
		"records": len(st.Records),
	}).Info("statement converted")

	if out != nil {
		var buf bytes.Buffer
		if err := out.Write(&buf, st); err != nil {
			return h.fail(c, fiber.StatusInternalServerError, err.Error())
		}
		name := strings.TrimSuffix(fh.Filename, filepath.Ext(fh.Filename)) + out.Extension()
		c.Set(fiber.HeaderContentType, out.ContentType())
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
		return c.Send(buf.Bytes())
	}

	p, _ := parser.New(st.Bank)
	records := st.Records
	if records == nil {
		records = []models.Record{}
	}
	return c.JSON(ConvertResponse{
		Success:  true,
		ID:       id,
		Bank:     string(st.Bank),
		BankName: p.BankName(),
		Columns:  st.Columns,
		Records:  records,
		Metadata: st.Metadata.Map(),
		Count:    len(records),
		Pages:    st.Trace,
		Version:  h.Version,
	})
}

func (h *Handler) includeHeader(c *fiber.Ctx) bool {
	switch c.FormValue("header") {
	case "false", "0", "no":
		return false
	case "true", "1", "yes":
		return true
	}
	return h.IncludeHeader
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func (h *Handler) fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{Success: false, Error: msg})
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Logger == nil {
		return logrus.StandardLogger()
	}
	return h.Logger
}
