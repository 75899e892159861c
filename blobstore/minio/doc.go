// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is an S3-compatible object storage system. This package uses the
// official MinIO Go client library, so it also works against Ceph, SeaweedFS
// and Garage.
//
// # Basic Usage
//
//	store, err := minio.New(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	}, "dumps", "catalog/")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// An existing *minio.Client can be wrapped with NewStore.
package minio
