//go:generate mockgen -source=../producer.go -destination=./mock_writer.go -package=mocks

package mocks
