package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"github.com/yourusername/trivia-questions-api/internal/domain/entity"
	apperrors "github.com/yourusername/trivia-questions-api/internal/pkg/errors"
	"github.com/yourusername/trivia-questions-api/internal/service"
)

var exportHeaders = []string{"ID", "Вопрос", "Ответ", "Категория", "Сложность"}

// ExportHandler выгружает банк вопросов в CSV или XLSX
type ExportHandler struct {
	questionService *service.QuestionService
	categoryService *service.CategoryService
}

// NewExportHandler создает новый обработчик экспорта
func NewExportHandler(questionService *service.QuestionService, categoryService *service.CategoryService) *ExportHandler {
	return &ExportHandler{
		questionService: questionService,
		categoryService: categoryService,
	}
}

// ExportQuestions выгружает все вопросы
// GET /questions/export?format=csv|xlsx
func (h *ExportHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		respondError(c, fmt.Errorf("%w: unknown export format %q", apperrors.ErrBadRequest, format))
		return
	}

	ctx := c.Request.Context()
	questions, err := h.questionService.ListAllQuestions(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := h.categoryService.CategoryMap(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%s", time.Now().Format("20060102_150405"))
	rows := exportRows(questions, categories)

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportRows готовит строки выгрузки. Отсутствующие значения - пустые ячейки.
func exportRows(questions []entity.Question, categories map[uint]string) [][]string {
	rows := make([][]string, 0, len(questions))
	for _, q := range questions {
		row := []string{strconv.FormatUint(uint64(q.ID), 10), "", "", "", ""}
		if q.Text != nil {
			row[1] = sanitizeForExcel(*q.Text)
		}
		if q.Answer != nil {
			row[2] = sanitizeForExcel(*q.Answer)
		}
		if q.CategoryID != nil {
			if label, ok := categories[*q.CategoryID]; ok {
				row[3] = sanitizeForExcel(label)
			} else {
				row[3] = strconv.FormatUint(uint64(*q.CategoryID), 10)
			}
		}
		if q.Difficulty != nil {
			row[4] = strconv.Itoa(*q.Difficulty)
		}
		rows = append(rows, row)
	}
	return rows
}

// exportCSV экспортирует вопросы в CSV с правильным экранированием спецсимволов
func (h *ExportHandler) exportCSV(c *gin.Context, rows [][]string, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))
	c.Status(http.StatusOK)

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	writer.Write(exportHeaders)
	writer.WriteAll(rows)
	if err := writer.Error(); err != nil {
		log.Printf("[ExportHandler] Ошибка записи CSV: %v", err)
	}
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *ExportHandler) exportXLSX(c *gin.Context, rows [][]string, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[ExportHandler] Ошибка создания StreamWriter: %v", err)
		respondError(c, err)
		return
	}

	if err := sw.SetRow("A1", toCells(exportHeaders)); err != nil {
		log.Printf("[ExportHandler] Ошибка записи заголовков: %v", err)
	}
	for i, row := range rows {
		rowNum := i + 2 // 1 строка - заголовки
		if err := sw.SetRow(fmt.Sprintf("A%d", rowNum), toCells(row)); err != nil {
			log.Printf("[ExportHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}
	if err := sw.Flush(); err != nil {
		log.Printf("[ExportHandler] Ошибка при Flush: %v", err)
		respondError(c, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[ExportHandler] Ошибка записи Excel в response: %v", err)
	}
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
