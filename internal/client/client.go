// Package client consume la API HTTP de categorías y mantiene una caché local de su estado.
package client

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
)

const (
	DefaultBaseURL      = "http://localhost:8080"
	DefaultCategoryPath = "/categories"
)

// APIError respuesta no 2xx de la API, con el cuerpo {error, code, details} decodificado.
type APIError struct {
	Status  int
	Code    string
	Message string
	Details string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = fmt.Sprintf("status %d", e.Status)
	}
	if e.Details != "" {
		return msg + ": " + e.Details
	}
	return msg
}

// Options configuración del cliente; los campos vacíos usan los valores por defecto.
type Options struct {
	BaseURL      string
	CategoryPath string // "/api/productcategoryapi" para servidores antiguos
	Timeout      time.Duration
}

// Client cliente REST tipado de la API de categorías.
type Client struct {
	http         *resty.Client
	categoryPath string
}

// New construye el cliente.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.CategoryPath == "" {
		opts.CategoryPath = DefaultCategoryPath
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(opts.BaseURL).
			SetTimeout(opts.Timeout).
			SetHeader("Accept", "application/json"),
		categoryPath: opts.CategoryPath,
	}
}

func (c *Client) req(ctx context.Context, result any) *resty.Request {
	r := c.http.R().SetContext(ctx).SetError(&dto.ErrorResponse{})
	if result != nil {
		r.SetResult(result)
	}
	return r
}

// List GET de todas las categorías.
func (c *Client) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if _, err := handleError(c.req(ctx, &out).Get(c.categoryPath)); err != nil {
		return nil, err
	}
	return out, nil
}

// Create POST JSON de una categoría.
func (c *Client) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if _, err := handleError(c.req(ctx, &out).SetBody(in).Post(c.categoryPath)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update PUT {categoryId, ...}.
func (c *Client) Update(ctx context.Context, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	var out dto.CategoryResponse
	if _, err := handleError(c.req(ctx, &out).SetBody(in).Put(c.categoryPath)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete DELETE {categoryId}.
func (c *Client) Delete(ctx context.Context, categoryID string) (*dto.DeleteCategoryResponse, error) {
	var out dto.DeleteCategoryResponse
	body := dto.DeleteCategoryRequest{CategoryID: categoryID}
	if _, err := handleError(c.req(ctx, &out).SetBody(body).Delete(c.categoryPath)); err != nil {
		return nil, err
	}
	return &out, nil
}

// Import POST multipart con el archivo en el campo "file".
func (c *Client) Import(ctx context.Context, fileName string, r io.Reader) ([]dto.CategoryResponse, error) {
	var out []dto.CategoryResponse
	if _, err := handleError(c.req(ctx, &out).SetFileReader("file", fileName, r).Post(c.categoryPath)); err != nil {
		return nil, err
	}
	return out, nil
}

// Regions GET /regions.
func (c *Client) Regions(ctx context.Context) (*dto.RegionListResponse, error) {
	var out dto.RegionListResponse
	if _, err := handleError(c.req(ctx, &out).Get("/regions")); err != nil {
		return nil, err
	}
	return &out, nil
}

// Region GET /regions/{name}.
func (c *Client) Region(ctx context.Context, name string) (*dto.RegionResponse, error) {
	var out dto.RegionResponse
	_, err := handleError(c.req(ctx, &out).SetPathParam("name", name).Get("/regions/{name}"))
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// handleError convierte respuestas >399 en *APIError; resty no las trata como error.
func handleError(res *resty.Response, err error) (*resty.Response, error) {
	if err != nil {
		return res, err
	}
	if !res.IsError() {
		return res, nil
	}
	apiErr := &APIError{Status: res.StatusCode()}
	if body, ok := res.Error().(*dto.ErrorResponse); ok && body != nil {
		apiErr.Code = body.Code
		apiErr.Message = body.Error
		apiErr.Details = body.Details
	}
	return res, apiErr
}
