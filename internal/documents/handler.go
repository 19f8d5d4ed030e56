package documents

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"zephvault-backend/internal/shared/server/respond"
)

const maxUploadSize = 25 << 20 // 25MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc      *Service
	Resolver ContentResolver
	// HTTPClient performs the public URL reachability probe in access checks.
	HTTPClient *http.Client
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{
		Svc:        svc,
		Resolver:   ContentResolver{Store: svc.Store},
		HTTPClient: http.DefaultClient,
	}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.list)
	rg.GET("/documents/:id", h.get)
	rg.DELETE("/documents/:id", h.delete)
	rg.POST("/extract-pdf-text", h.extractText)
	rg.POST("/check-pdf-access", h.checkAccess)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	doc, err := h.Svc.Upload(c.Request.Context(), UploadInput{
		FileName:   fileHeader.Filename,
		Category:   c.PostForm("category"),
		UnitID:     c.PostForm("unit_id"),
		UploadedBy: c.PostForm("uploaded_by"),
		Body:       file,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "upload_failed", "failed to upload document", err.Error())
		}
		return
	}

	respond.Created(c, toResponse(doc))
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	docs, err := h.Svc.List(c.Request.Context(), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list documents", nil)
		return
	}
	respond.OK(c, gin.H{"documents": toResponses(docs)})
}

func (h *Handler) get(c *gin.Context) {
	c.Set("documentId", c.Param("id"))

	doc, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		case errors.Is(err, ErrInvalidInput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "document id is required", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to load document", nil)
		}
		return
	}
	respond.OK(c, toResponse(doc))
}

func (h *Handler) delete(c *gin.Context) {
	c.Set("documentId", c.Param("id"))

	err := h.Svc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "Document not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal", "failed to delete document", nil)
		}
		return
	}
	respond.OK(c, gin.H{"success": true})
}

func (h *Handler) extractText(c *gin.Context) {
	var req extractTextRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Document.FileURL == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "document with file_url is required", nil)
		return
	}
	c.Set("documentId", req.Document.ID)

	doc := Document{
		ID:       req.Document.ID,
		FileName: req.Document.FileName,
		FileURL:  req.Document.FileURL,
	}
	respond.OK(c, extractTextResponse{
		Text:    h.Resolver.ExtractText(c.Request.Context(), doc),
		Success: true,
	})
}

func (h *Handler) checkAccess(c *gin.Context) {
	var req checkAccessRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.DocumentID == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "documentId is required", nil)
		return
	}
	c.Set("documentId", req.DocumentID)

	doc, err := h.Svc.Get(c.Request.Context(), req.DocumentID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.OK(c, gin.H{"success": false, "error": "Document not found in database"})
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to load document", nil)
		return
	}

	fileURL := req.FileURL
	if fileURL == "" {
		fileURL = doc.FileURL
	}

	var resp checkAccessResponse
	resp.Success = true
	resp.Document.ID = doc.ID
	resp.Document.FileName = doc.FileName
	resp.Document.FileURL = doc.FileURL
	resp.Document.Category = doc.Category
	resp.Checks.PublicURL = h.probePublicURL(c, fileURL)
	resp.Checks.Storage = h.probeStorage(c, fileURL)

	if resp.Checks.PublicURL.Accessible {
		resp.Recommendations = append(resp.Recommendations, "Public URL is accessible")
	} else {
		resp.Recommendations = append(resp.Recommendations, "Public URL failed: "+resp.Checks.PublicURL.Error)
	}
	if resp.Checks.Storage.Accessible {
		resp.Recommendations = append(resp.Recommendations, "Storage API works")
	} else {
		resp.Recommendations = append(resp.Recommendations, "Storage API failed: "+resp.Checks.Storage.Error)
	}

	respond.OK(c, resp)
}

func (h *Handler) probePublicURL(c *gin.Context, fileURL string) urlCheck {
	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodHead, fileURL, nil)
	if err != nil {
		return urlCheck{Error: err.Error()}
	}
	res, err := h.HTTPClient.Do(req)
	if err != nil {
		return urlCheck{Error: err.Error()}
	}
	defer res.Body.Close()

	check := urlCheck{
		Accessible: res.StatusCode >= 200 && res.StatusCode < 300,
		Status:     res.StatusCode,
	}
	if !check.Accessible {
		check.Error = fmt.Sprintf("HTTP %d: %s", res.StatusCode, http.StatusText(res.StatusCode))
	}
	return check
}

func (h *Handler) probeStorage(c *gin.Context, fileURL string) storageCheck {
	key, err := StorageKeyFromURL(fileURL)
	if err != nil {
		return storageCheck{Error: "invalid file URL format - cannot extract path"}
	}
	body, err := h.Svc.Store.Open(c.Request.Context(), key)
	if err != nil {
		return storageCheck{Error: err.Error()}
	}
	body.Close()
	return storageCheck{Accessible: true}
}
