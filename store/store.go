// Package store provides persistence implementations for grocery lists.
// The ListStore and KeyValue interfaces are defined in the parent grocer
// package (../store_interface.go) to avoid import cycles.
//
// ListStore implementations:
//   - LocalStore: the whole list array as one JSON document in a KeyValue
//   - DynamoDBStore: AWS DynamoDB single-table backend
//   - MemoryStore: in-memory backend for testing
//
// KeyValue backends for LocalStore:
//   - MemoryKV, FileKV, SQLiteKV
package store
