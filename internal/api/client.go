package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wichananm65/gadget-shop-dashboard/internal/auth"
	"github.com/wichananm65/gadget-shop-dashboard/internal/catalog"
	"github.com/wichananm65/gadget-shop-dashboard/internal/token"
)

// fallbackMessage is used when neither the envelope nor the transport gives
// us anything better.
const fallbackMessage = "API request failed"

// envelope is the wrapper every backend response follows.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Client talks to the shop backend. It owns the bearer token: a successful
// login/register persists the returned token, Logout clears it, and every
// request carries it as an Authorization header while one is present.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  token.Store
	log     zerolog.Logger
}

func NewClient(baseURL string, tokens token.Store, log zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		tokens:  tokens,
		log:     log,
	}
}

// Login exchanges credentials for a session and persists the token.
func (c *Client) Login(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	var session auth.Session
	body := map[string]string{"email": creds.Email, "password": creds.Password}
	if err := c.postJSON(ctx, "/api/auth/login", body, &session); err != nil {
		return auth.Session{}, err
	}
	if err := c.tokens.Save(session.Token); err != nil {
		return auth.Session{}, fmt.Errorf("save token: %w", err)
	}
	return session, nil
}

// Register creates an account, signs it in and persists the token.
func (c *Client) Register(ctx context.Context, creds auth.Credentials) (auth.Session, error) {
	var session auth.Session
	body := map[string]string{"name": creds.Name, "email": creds.Email, "password": creds.Password}
	if err := c.postJSON(ctx, "/api/auth/register", body, &session); err != nil {
		return auth.Session{}, err
	}
	if err := c.tokens.Save(session.Token); err != nil {
		return auth.Session{}, fmt.Errorf("save token: %w", err)
	}
	return session, nil
}

// CurrentUser asks the backend who the persisted token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (auth.User, error) {
	var data struct {
		User auth.User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth", nil, "", &data); err != nil {
		return auth.User{}, err
	}
	return data.User, nil
}

// Logout clears the persisted token. No network call is involved.
func (c *Client) Logout() error {
	return c.tokens.Clear()
}

// AddCategory creates a category.
func (c *Client) AddCategory(ctx context.Context, name string) (catalog.Category, error) {
	var data struct {
		Category catalog.Category `json:"category"`
	}
	body := map[string]string{"name": name}
	if err := c.postJSON(ctx, "/api/product/add-category", body, &data); err != nil {
		return catalog.Category{}, err
	}
	return data.Category, nil
}

// AddSubcategory appends a subcategory and returns the updated category.
func (c *Client) AddSubcategory(ctx context.Context, categoryID, name string) (catalog.Category, error) {
	var data struct {
		Category catalog.Category `json:"category"`
	}
	body := map[string]string{"categoryId": categoryID, "name": name}
	if err := c.postJSON(ctx, "/api/product/add-sub-category", body, &data); err != nil {
		return catalog.Category{}, err
	}
	return data.Category, nil
}

// AddProduct uploads the product form as multipart/form-data. The content
// type is the writer's boundary type, never application/json, so the
// transport keeps the multipart boundary intact.
func (c *Client) AddProduct(ctx context.Context, form catalog.ProductForm, images []catalog.ImageUpload) (catalog.Product, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	variants, err := json.Marshal(form.Variants)
	if err != nil {
		return catalog.Product{}, err
	}
	fields := []struct{ name, value string }{
		{"title", form.Title},
		{"price", strconv.FormatFloat(form.Price, 'f', -1, 64)},
		{"description", form.Description},
		{"category", form.Category},
		{"subcategory", form.Subcategory},
		{"variants", string(variants)},
	}
	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return catalog.Product{}, err
		}
	}
	for _, img := range images {
		part, err := w.CreateFormFile("images", img.Filename)
		if err != nil {
			return catalog.Product{}, err
		}
		if _, err := part.Write(img.Data); err != nil {
			return catalog.Product{}, err
		}
	}
	if err := w.Close(); err != nil {
		return catalog.Product{}, err
	}

	var data struct {
		Product catalog.Product `json:"product"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/product/add-product", buf, w.FormDataContentType(), &data); err != nil {
		return catalog.Product{}, err
	}
	return data.Product, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body any, out any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(b), "application/json", out)
}

// do runs one request and unwraps the envelope. A transport failure or a
// non-success envelope becomes an error carrying the backend message, with
// fallbackMessage when none was given.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if tok := c.tokens.Current(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("path", path).Msg("request failed")
		return fmt.Errorf("%s: %w", fallbackMessage, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("undecodable response")
		return errors.New(fallbackMessage)
	}
	if !env.Success {
		msg := env.Message
		if msg == "" {
			msg = fallbackMessage
		}
		c.log.Debug().Int("status", resp.StatusCode).Str("path", path).Str("message", msg).Msg("backend rejected request")
		return errors.New(msg)
	}

	if out != nil {
		if env.Data == nil {
			return errors.New(fallbackMessage)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.New(fallbackMessage)
		}
	}
	return nil
}
