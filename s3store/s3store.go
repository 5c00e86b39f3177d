/* Copyright (c) 2013 The s3cache AUTHORS. All rights reserved.
 * Copyright (c) 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 *
 * Package s3store keeps outing data in Amazon S3. A Store is both an
 * httpcache.Cache, used to cache rosters fetched over http, and the
 * destination for published group reports. The cache half is based on the
 * original github.com/sourcegraph/s3cache but uses aws-sdk-go-v2.
 */
package s3store

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

const (
	cachePrefix    = "webcache"
	artifactPrefix = "outings"
)

// Store reads and writes objects in a single S3 bucket.
type Store struct {
	// Config is the Amazon S3 configuration.
	Config aws.Config

	// Client is the s3 client used when interacting with S3. Init creates it
	// from the default Config; callers may replace it afterwards.
	Client *s3.Client

	bucketName string

	// gzip compresses cache entries on Set and decompresses them on Get;
	// their keys get a ".gz" suffix. Artifacts are never compressed.
	gzip bool

	logErrors bool

	// context for the httpcache.Cache methods, which take none
	ctx context.Context
}

// New returns a Store for bucketName. Callers must invoke Init before use.
func New(ctxIn context.Context, bucketNameIn string, gzipIn bool,
	logErrorsIn bool) *Store {

	return &Store{
		ctx:        ctxIn,
		bucketName: bucketNameIn,
		gzip:       gzipIn,
		logErrors:  logErrorsIn,
	}
}

// Init loads the default AWS configuration (environment variables, shared
// config and credentials files) and checks that the bucket is reachable.
func (s *Store) Init() error {
	var err error
	s.Config, err = config.LoadDefaultConfig(s.ctx)
	if err != nil {
		return fmt.Errorf("s3store.init: failed to load AWS config: %w", err)
	}
	s.Client = s3.NewFromConfig(s.Config)

	if _, err = s.Client.HeadBucket(s.ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucketName),
	}); err != nil {
		return fmt.Errorf("s3store.init: head bucket failed for %s: %w", s.bucketName, err)
	}

	return nil
}

func (s *Store) Bucket() string { return s.bucketName }

// Get implements httpcache.Cache.
func (s *Store) Get(key string) ([]byte, bool) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
	}

	resp, err := s.Client.GetObject(s.ctx, input)
	if err != nil {
		// no such key just indicates a cache miss
		if s.logErrors && !isNotFound(err) {
			log.Printf("s3store.get: failed to get object %v%v: %v",
				*input.Bucket, *input.Key, err)
		}
		return nil, false
	}
	defer resp.Body.Close()

	rdr := resp.Body
	if s.gzip {
		rdr, err = gzip.NewReader(rdr)
		if err != nil {
			if s.logErrors {
				log.Printf("s3store.get: failed to open compressed object %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return nil, false
		}

		defer rdr.Close()
	}
	data, err := io.ReadAll(rdr)
	if err != nil && s.logErrors {
		log.Printf("s3store.get: failed to read object %v%v: %v",
			*input.Bucket, *input.Key, err)
	}

	return data, err == nil
}

// Set implements httpcache.Cache.
func (s *Store) Set(key string, data []byte) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
		Body:   bytes.NewReader(data),
	}

	if s.gzip {
		buf, err := gzipBytes(data)
		if err != nil {
			if s.logErrors {
				log.Printf("s3store.set: failed to gzip data for %v%v: %v",
					*input.Bucket, *input.Key, err)
			}
			return
		}
		input.Body = buf
		input.ContentEncoding = aws.String("gzip")
	}

	if _, err := s.Client.PutObject(s.ctx, input); err != nil && s.logErrors {
		log.Printf("s3store.set: put failed for %v%v: %v", *input.Bucket,
			*input.Key, err)
	}
}

// Delete implements httpcache.Cache.
func (s *Store) Delete(key string) {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.cacheKeyToObjectKey(key)),
	}

	if _, err := s.Client.DeleteObject(s.ctx, input); err != nil && s.logErrors {
		log.Printf("s3store.delete: delete failed: %v", err)
	}
}

// PutArtifact uploads a finished report under key and returns its s3:// URI.
func (s *Store) PutArtifact(ctx context.Context, key string,
	contentType string, body io.Reader) (string, error) {

	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	}
	if _, err := s.Client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("s3store.putartifact: upload of %v failed: %w",
			key, err)
	}

	return fmt.Sprintf("s3://%v/%v", s.bucketName, key), nil
}

// ArtifactKey returns the object key a report file is published under,
// grouped by event date, e.g. "outings/2026-10-19/final_groups.xlsx".
func ArtifactKey(eventDate time.Time, filename string) string {
	day := "undated"
	if !eventDate.IsZero() {
		day = eventDate.Format("2006-01-02")
	}
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))

	return path.Join(artifactPrefix, day, base)
}

func (s *Store) cacheKeyToObjectKey(key string) string {
	h := md5.New()
	io.WriteString(h, key)
	objKey := fmt.Sprintf("%v/%v", cachePrefix, hex.EncodeToString(h.Sum(nil)))
	if s.gzip {
		objKey += ".gz"
	}

	return objKey
}

func gzipBytes(data []byte) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(data); err != nil {
		return nil, err
	}
	if err := gw.Close(); err != nil {
		return nil, err
	}

	return &buf, nil
}

func isNotFound(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	code := apiErr.ErrorCode()

	return code == "NoSuchKey" || code == "NotFound"
}
