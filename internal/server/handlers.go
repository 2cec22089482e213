package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/username/timesheet-tracker/internal/storage"
	"github.com/username/timesheet-tracker/internal/timesheet"
	"github.com/username/timesheet-tracker/pkg/dateutil"
)

type eventRequest struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type eventResponse struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type holidayResponse struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

type monthRequest struct {
	Year  flexInt `json:"year"`
	Month flexInt `json:"month"`
}

// flexInt accepts both 2024 and "2024"
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("not an integer: %s", b)
	}
	*n = flexInt(v)
	return nil
}

func (s *Server) registerEvent(c *fiber.Ctx) error {
	var req eventRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := s.service.SetStatus(c.UserContext(), req.Date, req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) listEvents(c *fiber.Ctx) error {
	events, err := s.service.Events(c.UserContext())
	if err != nil {
		return err
	}

	resp := make([]eventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, eventResponse{
			Date:   dateutil.FormatDate(e.Date),
			Status: string(e.Status),
		})
	}
	return c.JSON(resp)
}

func (s *Server) lockMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthBody(c)
	if err != nil {
		return err
	}
	if err := s.service.Lock(c.UserContext(), year, month); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"locked": true})
}

func (s *Server) unlockMonth(c *fiber.Ctx) error {
	year, month, err := parseMonthBody(c)
	if err != nil {
		return err
	}
	if err := s.service.Unlock(c.UserContext(), year, month); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"locked": false})
}

func (s *Server) isLocked(c *fiber.Ctx) error {
	year, month, ok := parseMonthQuery(c)
	if !ok {
		return c.JSON(fiber.Map{"locked": false})
	}

	locked, err := s.service.IsLocked(c.UserContext(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"locked": locked})
}

func (s *Server) holidays(c *fiber.Ctx) error {
	holidays := s.service.Holidays(c.UserContext(), c.Query("start"), c.Query("end"))

	resp := make([]holidayResponse, 0, len(holidays))
	for _, h := range holidays {
		resp = append(resp, holidayResponse{
			Date: dateutil.FormatDate(h.Date),
			Name: h.Name,
		})
	}
	return c.JSON(resp)
}

func (s *Server) summary(c *fiber.Ctx) error {
	year, month, ok := parseMonthQuery(c)
	if !ok {
		return c.JSON(fiber.Map{"workdays": 0})
	}

	count, err := s.service.Summary(c.UserContext(), year, month)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"workdays": count})
}

func (s *Server) export(c *fiber.Ctx) error {
	year, month, ok := parseMonthQuery(c)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "year and month are required")
	}

	format := timesheet.Format(strings.ToLower(c.Query("format", string(timesheet.FormatPDF))))
	export, err := s.service.Export(c.UserContext(), year, month, format)
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, export.ContentType)
	if format != timesheet.FormatHTML {
		c.Attachment(export.Filename)
	}
	return c.Send(export.Body)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.SendString("OK")
}

// parseMonthQuery reads ?year=&month=; ok is false when either is missing or invalid
func parseMonthQuery(c *fiber.Ctx) (int, time.Month, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(c.Query("year")))
	if err != nil {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(c.Query("month")))
	if err != nil || !dateutil.ValidMonth(month) {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func parseMonthBody(c *fiber.Ctx) (int, time.Month, error) {
	var req monthRequest
	if err := c.BodyParser(&req); err != nil {
		return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if !dateutil.ValidMonth(int(req.Month)) {
		return 0, 0, fmt.Errorf("%w: %d", storage.ErrInvalidMonth, req.Month)
	}
	return int(req.Year), time.Month(req.Month), nil
}

// isClientError reports whether err should be answered with 400
func isClientError(err error) bool {
	return errors.Is(err, dateutil.ErrInvalidDate) ||
		errors.Is(err, storage.ErrInvalidStatus) ||
		errors.Is(err, storage.ErrInvalidMonth) ||
		errors.Is(err, timesheet.ErrUnknownFormat)
}
