package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/abrhamtibebu/lp-ERP/internal/erp/entity"
	"github.com/abrhamtibebu/lp-ERP/internal/erp/repository"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// AttachmentService 发票附件，文件存 MinIO
type AttachmentService struct {
	invoiceRepo *repository.InvoiceRepository
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(invoiceRepo *repository.InvoiceRepository, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		invoiceRepo: invoiceRepo,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

func (s *AttachmentService) ListInvoices(tenantID string) ([]entity.CommercialInvoice, error) {
	return s.invoiceRepo.List(tenantID)
}

func (s *AttachmentService) GetInvoice(tenantID, id string) (*entity.CommercialInvoice, error) {
	invoice, err := s.invoiceRepo.GetByID(tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("发票不存在: %w", ErrNotFound)
		}
		return nil, err
	}
	return invoice, nil
}

// Upload 上传发票附件
func (s *AttachmentService) Upload(ctx context.Context, tenantID, invoiceID, userID string, reader io.Reader, fileName string, fileSize int64, contentType string) (*entity.InvoiceAttachment, error) {
	invoice, err := s.invoiceRepo.GetByID(tenantID, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("发票不存在: %w", ErrNotFound)
		}
		return nil, err
	}

	objectName := fmt.Sprintf("invoices/%s/%s%s",
		time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err = s.minioClient.PutObject(ctx, s.bucketName, objectName, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("上传附件失败: %w", err)
		}
	}

	att := &entity.InvoiceAttachment{
		TenantID:   tenantID,
		InvoiceID:  invoice.ID,
		FileName:   fileName,
		FilePath:   objectName,
		FileSize:   fileSize,
		MimeType:   contentType,
		UploadedBy: userID,
	}
	if err := s.invoiceRepo.CreateAttachment(att); err != nil {
		return nil, fmt.Errorf("写入附件记录失败: %w", err)
	}
	return att, nil
}

// Download 读取附件内容
func (s *AttachmentService) Download(ctx context.Context, objectName string) (io.ReadCloser, error) {
	if s.minioClient == nil {
		return nil, fmt.Errorf("文件存储未配置")
	}
	object, err := s.minioClient.GetObject(ctx, s.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("读取附件失败: %w", err)
	}
	return object, nil
}
