package obstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// metaSuffix names the sidecar object holding a path's metadata and ACL.
const metaSuffix = ".meta.json"

// sidecarDoc is the JSON document kept alongside each data object.
type sidecarDoc struct {
	Metadata []AVU `json:"metadata"`
	ACL      []AC  `json:"acl"`
}

type minioClient struct {
	mc     *minio.Client
	bucket string
}

// NewClient creates a store client backed by an S3-compatible service.
func NewClient(cfg Config) (Client, error) {
	// Minio expects endpoint without scheme
	endpoint := strings.TrimPrefix(cfg.Endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	timeoutDuration := time.Duration(timeout) * time.Second

	// Create custom transport with strict timeouts
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeoutDuration,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeoutDuration,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeoutDuration,
	}

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioClient{mc: mc, bucket: cfg.Bucket}, nil
}

// objectKey maps an absolute store path to a bucket object key.
func objectKey(path string) string {
	return strings.TrimPrefix(path, "/")
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func (c *minioClient) Exists(ctx context.Context, path string) (bool, error) {
	key := objectKey(path)

	_, err := c.mc.StatObject(ctx, c.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if !isNotFound(err) {
		return false, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	// A collection exists if anything is stored under its prefix.
	for info := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
		Prefix:  key + "/",
		MaxKeys: 1,
	}) {
		if info.Err != nil {
			return false, fmt.Errorf("failed to list %s: %w", path, info.Err)
		}
		return true, nil
	}

	return false, nil
}

func (c *minioClient) IterContents(ctx context.Context, path string) <-chan Item {
	items := make(chan Item)

	go func() {
		defer close(items)

		prefix := objectKey(path)
		if prefix != "" && !strings.HasSuffix(prefix, "/") {
			prefix += "/"
		}

		for info := range c.mc.ListObjects(ctx, c.bucket, minio.ListObjectsOptions{
			Prefix: prefix,
		}) {
			if info.Err != nil {
				items <- Item{Err: fmt.Errorf("failed to list %s: %w", path, info.Err)}
				return
			}
			// Sidecar objects are an implementation detail, not contents.
			if strings.HasSuffix(info.Key, metaSuffix) {
				continue
			}
			isColl := strings.HasSuffix(info.Key, "/")
			items <- Item{
				Path:         "/" + strings.TrimSuffix(info.Key, "/"),
				IsCollection: isColl,
			}
		}
	}()

	return items
}

func (c *minioClient) readSidecar(ctx context.Context, path string) (*sidecarDoc, error) {
	key := objectKey(path) + metaSuffix

	obj, err := c.mc.GetObject(ctx, c.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata of %s: %w", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return &sidecarDoc{}, nil
		}
		return nil, fmt.Errorf("failed to read metadata of %s: %w", path, err)
	}

	var doc sidecarDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("malformed metadata document for %s: %w", path, err)
	}
	return &doc, nil
}

func (c *minioClient) writeSidecar(ctx context.Context, path string, doc *sidecarDoc) error {
	key := objectKey(path) + metaSuffix

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode metadata document for %s: %w", path, err)
	}

	_, err = c.mc.PutObject(ctx, c.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to write metadata of %s: %w", path, err)
	}
	return nil
}

func (c *minioClient) Metadata(ctx context.Context, path string) ([]AVU, error) {
	doc, err := c.readSidecar(ctx, path)
	if err != nil {
		return nil, err
	}
	return doc.Metadata, nil
}

func (c *minioClient) AddMetadata(ctx context.Context, path string, avus []AVU) (int, error) {
	doc, err := c.readSidecar(ctx, path)
	if err != nil {
		return 0, err
	}

	current := make(map[AVU]struct{}, len(doc.Metadata))
	for _, avu := range doc.Metadata {
		current[avu] = struct{}{}
	}

	added := 0
	for _, avu := range SortedUniqueAVUs(avus) {
		if _, ok := current[avu]; !ok {
			doc.Metadata = append(doc.Metadata, avu)
			added++
		}
	}
	if added == 0 {
		return 0, nil
	}

	doc.Metadata = SortedUniqueAVUs(doc.Metadata)
	if err := c.writeSidecar(ctx, path, doc); err != nil {
		return 0, err
	}
	return added, nil
}

func (c *minioClient) SupersedeMetadata(ctx context.Context, path string, avus []AVU) (int, int, error) {
	doc, err := c.readSidecar(ctx, path)
	if err != nil {
		return 0, 0, err
	}

	target := SortedUniqueAVUs(avus)
	added, removed := diffAVUs(doc.Metadata, target)
	if added == 0 && removed == 0 {
		return 0, 0, nil
	}

	doc.Metadata = target
	if err := c.writeSidecar(ctx, path, doc); err != nil {
		return 0, 0, err
	}
	return added, removed, nil
}

func (c *minioClient) Permissions(ctx context.Context, path string) ([]AC, error) {
	doc, err := c.readSidecar(ctx, path)
	if err != nil {
		return nil, err
	}
	return doc.ACL, nil
}

func (c *minioClient) SupersedePermissions(ctx context.Context, path string, acl []AC) (int, int, error) {
	doc, err := c.readSidecar(ctx, path)
	if err != nil {
		return 0, 0, err
	}

	target := SortedUniqueACs(acl)
	added, removed := diffACs(doc.ACL, target)
	if added == 0 && removed == 0 {
		return 0, 0, nil
	}

	doc.ACL = target
	if err := c.writeSidecar(ctx, path, doc); err != nil {
		return 0, 0, err
	}
	return added, removed, nil
}

func diffAVUs(current, target []AVU) (added, removed int) {
	cur := make(map[AVU]struct{}, len(current))
	for _, avu := range current {
		cur[avu] = struct{}{}
	}
	tgt := make(map[AVU]struct{}, len(target))
	for _, avu := range target {
		tgt[avu] = struct{}{}
	}

	for avu := range tgt {
		if _, ok := cur[avu]; !ok {
			added++
		}
	}
	for avu := range cur {
		if _, ok := tgt[avu]; !ok {
			removed++
		}
	}
	return added, removed
}

func diffACs(current, target []AC) (added, removed int) {
	cur := make(map[AC]struct{}, len(current))
	for _, ac := range current {
		cur[ac] = struct{}{}
	}
	tgt := make(map[AC]struct{}, len(target))
	for _, ac := range target {
		tgt[ac] = struct{}{}
	}

	for ac := range tgt {
		if _, ok := cur[ac]; !ok {
			added++
		}
	}
	for ac := range cur {
		if _, ok := tgt[ac]; !ok {
			removed++
		}
	}
	return added, removed
}
