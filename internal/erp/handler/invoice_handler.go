package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/service"
	"github.com/gin-gonic/gin"
)

type InvoiceHandler struct {
	svc *service.AttachmentService
}

func NewInvoiceHandler(svc *service.AttachmentService) *InvoiceHandler {
	return &InvoiceHandler{svc: svc}
}

func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.svc.ListInvoices(tenantID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": invoices})
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	invoice, err := h.svc.GetInvoice(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": 0, "message": "success", "data": invoice})
}

// UploadAttachment 上传发票附件：POST /invoices/:id/attachments
func (h *InvoiceHandler) UploadAttachment(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"code": 10001, "message": "缺少上传文件: " + err.Error()})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"code": 50001, "message": "读取上传文件失败: " + err.Error()})
		return
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	att, err := h.svc.Upload(c.Request.Context(), tenantID(c), c.Param("id"), userID(c),
		file, fileHeader.Filename, fileHeader.Size, contentType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"code": 0, "message": "success", "data": att})
}

// DownloadAttachment 下载发票附件：GET /invoices/:id/attachments/:attachmentID/download
func (h *InvoiceHandler) DownloadAttachment(c *gin.Context) {
	invoice, err := h.svc.GetInvoice(tenantID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	attachmentID := c.Param("attachmentID")
	for _, att := range invoice.Attachments {
		if att.ID != attachmentID {
			continue
		}
		object, err := h.svc.Download(c.Request.Context(), att.FilePath)
		if err != nil {
			respondError(c, err)
			return
		}
		defer object.Close()

		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, att.FileName))
		c.Header("Content-Type", att.MimeType)
		if _, err := io.Copy(c.Writer, object); err != nil {
			c.Abort()
		}
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"code": 10002, "message": "附件不存在"})
}
