// Package api exposes the converter over HTTP: upload a statement PDF, get
// the parsed records and the rendered OFX or CSV back as JSON.
package api

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/yuhtools/yuh2ofx/internal/extractor"
	"github.com/yuhtools/yuh2ofx/internal/models"
	"github.com/yuhtools/yuh2ofx/internal/parser"
	"github.com/yuhtools/yuh2ofx/internal/writer"
)

// ConvertResponse is the JSON response from the /api/convert endpoint.
type ConvertResponse struct {
	Success     bool               `json:"success"`
	Error       string             `json:"error,omitempty"`
	Currency    string             `json:"currency,omitempty"`
	Currencies  []string           `json:"currencies,omitempty"`
	Header      *models.Header     `json:"header,omitempty"`
	Statements  []models.Statement `json:"statements"`
	Count       int                `json:"count"`
	TotalDebit  string             `json:"totalDebit,omitempty"`
	TotalCredit string             `json:"totalCredit,omitempty"`
	Format      string             `json:"format,omitempty"`
	Output      string             `json:"output,omitempty"`
}

// NewApp builds the fiber application with all routes registered.
func NewApp() *fiber.App {
	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20,
	})
	app.Get("/api/health", HandleHealth)
	app.Post("/api/convert", HandleConvert)
	return app
}

func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"engine": "fiber",
	})
}

func HandleConvert(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "No file uploaded. Use form field 'file'.")
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		return writeError(c, fiber.StatusBadRequest, "Only PDF files are supported.")
	}

	currency := strings.ToUpper(c.FormValue("currency"))
	if currency == "" {
		return writeError(c, fiber.StatusBadRequest, "Form field 'currency' is required.")
	}
	format := strings.ToLower(c.FormValue("format"))
	if format == "" {
		format = "ofx"
	}
	if format != "ofx" && format != "csv" {
		return writeError(c, fiber.StatusBadRequest, fmt.Sprintf("Unknown format %q. Use ofx or csv.", format))
	}

	tmpFile, err := os.CreateTemp("", "statement-*.pdf")
	if err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to create temp file.")
	}
	defer os.Remove(tmpFile.Name())
	tmpFile.Close()

	if err := c.SaveFile(fileHeader, tmpFile.Name()); err != nil {
		return writeError(c, fiber.StatusInternalServerError, "Failed to save uploaded file.")
	}

	doc, err := extractor.Load(tmpFile.Name())
	if err != nil {
		return writeError(c, fiber.StatusUnprocessableEntity, fmt.Sprintf("PDF extraction failed: %v", err))
	}

	p := parser.New(currency)
	p.SkipFinalBalanceCheck = c.FormValue("skipBalanceCheck") == "true"
	parsed, err := p.Parse(doc)
	if err != nil {
		logrus.WithError(err).Warn("parse failed")
		resp := ConvertResponse{
			Error:      fmt.Sprintf("Parsing failed: %v", err),
			Currencies: parser.DetectCurrencies(doc),
			Statements: []models.Statement{},
		}
		var notFound *parser.CurrencyNotFoundError
		if errors.As(err, &notFound) {
			return c.Status(fiber.StatusNotFound).JSON(resp)
		}
		return c.Status(fiber.StatusUnprocessableEntity).JSON(resp)
	}

	var g writer.Generator
	if format == "csv" {
		g = writer.NewCSVGenerator()
	} else {
		g = writer.NewOFXGenerator(currency)
	}

	var totalDebit, totalCredit int64
	for _, stmt := range parsed.Statements {
		if stmt.Direction == models.Debit {
			totalDebit += stmt.Amount.Shift(2).Round(0).IntPart()
		} else {
			totalCredit += stmt.Amount.Shift(2).Round(0).IntPart()
		}
	}

	// nil marshals to JSON null, not []
	stmts := parsed.Statements
	if stmts == nil {
		stmts = []models.Statement{}
	}

	return c.JSON(ConvertResponse{
		Success:     true,
		Currency:    currency,
		Currencies:  parser.DetectCurrencies(doc),
		Header:      &parsed.Header,
		Statements:  stmts,
		Count:       len(stmts),
		TotalDebit:  fmt.Sprintf("%d.%02d", totalDebit/100, totalDebit%100),
		TotalCredit: fmt.Sprintf("%d.%02d", totalCredit/100, totalCredit%100),
		Format:      format,
		Output:      g.Generate(parsed),
	})
}

func writeError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(ConvertResponse{
		Error:      msg,
		Statements: []models.Statement{},
	})
}
