// Command export renders a stored résumé to a PDF or standalone HTML file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"resumeBuilder/internal/config"
	"resumeBuilder/internal/database"
	"resumeBuilder/internal/pdf"
	"resumeBuilder/internal/render"
)

const (
	formatPDF  = "pdf"
	formatHTML = "html"
)

func main() {
	var (
		id     = flag.Uint("id", 0, "简历 ID（必填）")
		out    = flag.String("out", "", "输出文件路径（可选，默认 {full_name}_resume.{format}，- 表示标准输出）")
		format = flag.String("format", formatPDF, "输出格式：pdf 或 html")
	)
	flag.Parse()

	_ = godotenv.Load()

	if *id == 0 {
		log.Fatal("missing required flag: --id")
	}
	f := strings.ToLower(strings.TrimSpace(*format))
	if f != formatPDF && f != formatHTML {
		log.Fatalf("unsupported format %q (want pdf or html)", *format)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	ctx := context.Background()
	record, err := database.NewResumeRepository(db).Get(ctx, *id)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log.Fatalf("resume %d not found", *id)
	case err != nil:
		log.Fatalf("query resume: %v", err)
	}

	renderer, err := render.New()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}
	fragment, err := renderer.Resume(record.Fields())
	if err != nil {
		log.Fatalf("render resume: %v", err)
	}
	document := render.Document(fragment)

	var (
		data     []byte
		filename string
	)
	switch f {
	case formatHTML:
		data = []byte(document)
		filename = record.FullName + "_resume.html"
	case formatPDF:
		converter, err := pdf.NewFromConfig(cfg.PDF)
		if err != nil {
			log.Fatalf("init pdf converter: %v", err)
		}
		exporter := pdf.NewExporter(converter, logger, pdf.WithTimeout(cfg.PDF.Timeout))
		result, err := exporter.Export(ctx, record.ID, record.FullName, document)
		if errors.Is(err, pdf.ErrUnavailable) {
			log.Fatal("no pdf converter configured: set WKHTMLTOPDF_PATH or PDF_CHROMIUM=true, or use -format html")
		}
		if err != nil {
			log.Fatalf("export pdf: %v", err)
		}
		data = result.Data
		filename = result.Filename
	}

	target := strings.TrimSpace(*out)
	if target == "" {
		target = filename
	}
	if err := writeOutput(target, data); err != nil {
		log.Fatalf("write output: %v", err)
	}
	if target != "-" {
		fmt.Fprintf(os.Stderr, "wrote %d bytes to %s\n", len(data), target)
	}
}

func writeOutput(target string, data []byte) error {
	var w io.Writer = os.Stdout
	if target != "-" {
		file, err := os.Create(target)
		if err != nil {
			return err
		}
		defer file.Close()
		w = file
	}
	_, err := w.Write(data)
	return err
}
