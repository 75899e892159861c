// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("catalog/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	st, err := catalogdb.Build(ctx, catalogdb.Input{
//	    Bulk:   source.Collection{Store: store, Prefix: "bulk/", Layout: source.LayoutBulk},
//	    Single: source.Collection{Store: store, Prefix: "single/", Layout: source.LayoutSingle},
//	})
//
// # Features
//
//   - Range reads for partial fetches
//   - Parallel ranged downloads of whole input files
//   - Automatic pagination for listing
//   - Configurable prefix and custom endpoints
package s3
