package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/coachlens/coachlens/pkg/vector"
)

// ErrorResponse is the JSON body returned for failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// handlePing returns a simple health check response.
func (s *Server) handlePing(c *fiber.Ctx) error {
	return c.JSON("pong")
}

// handleSearch handles GET /v1/search requests.
// Query parameters:
//   - query (required unless similar_to is set): the search query text
//   - top_k (optional, default 5): number of results to return
//   - business_focus (optional): restrict to a business focus, case-insensitive
//   - participant (optional): restrict to a participant, case-insensitive
//   - min_urgency (optional): minimum urgency level, 1-5
//   - similar_to (optional): return sessions similar to this participant's
func (s *Server) handleSearch(c *fiber.Ctx) error {
	if similarTo := c.Query("similar_to"); similarTo != "" {
		topK, err := parseTopK(c)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}

		output, err := s.searcher.SimilarTo(c.Context(), similarTo, topK)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
		}
		return c.JSON(output)
	}

	query := c.Query("query")
	if query == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "query parameter is required",
		})
	}

	topK, err := parseTopK(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
	}

	filter := vector.Filter{
		BusinessFocus: c.Query("business_focus"),
		Participant:   c.Query("participant"),
	}

	if minStr := c.Query("min_urgency"); minStr != "" {
		parsed, err := strconv.Atoi(minStr)
		if err != nil || parsed < 1 || parsed > 5 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
				Error: "min_urgency must be an integer between 1 and 5",
			})
		}
		filter.MinUrgency = parsed
	}

	output, err := s.searcher.Search(c.Context(), query, topK, filter)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(output)
}

// handleStats returns statistics about the vector index.
func (s *Server) handleStats(c *fiber.Ctx) error {
	stats, err := s.store.Stats(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to get index stats"})
	}

	return c.JSON(stats)
}

// handleDeleteRecord removes a single record from the index by its ID.
func (s *Server) handleDeleteRecord(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "id parameter required"})
	}

	if err := s.store.Delete(c.Context(), id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: err.Error()})
	}

	return c.JSON(map[string]any{"deleted": id})
}

func parseTopK(c *fiber.Ctx) (int, error) {
	topK := 5
	if topKStr := c.Query("top_k"); topKStr != "" {
		parsed, err := strconv.Atoi(topKStr)
		if err != nil || parsed <= 0 {
			return 0, errors.New("top_k must be a positive integer")
		}
		topK = parsed
	}
	return topK, nil
}
