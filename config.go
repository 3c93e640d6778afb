package main

import (
	"fmt"
	"os"
)

// Config holds all environment variables for the API server.
type Config struct {
	Port      string
	JWTSecret string

	// Media storage: "disk" (default) or "s3".
	MediaDriver  string
	MediaRoot    string
	MediaBaseURL string
	S3Bucket     string
	S3Prefix     string

	SMTPServer  string
	SMTPPort    string
	SenderEmail string
	SenderPass  string
	SenderName  string
	AdminEmail  string
}

// LoadConfig loads environment variables into Config struct and validates them.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Port:         os.Getenv("PORT"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		MediaDriver:  os.Getenv("MEDIA_DRIVER"),
		MediaRoot:    os.Getenv("MEDIA_ROOT"),
		MediaBaseURL: os.Getenv("MEDIA_BASE_URL"),
		S3Bucket:     os.Getenv("AWS_S3_BUCKET"),
		S3Prefix:     os.Getenv("AWS_S3_PREFIX"),
		SMTPServer:   os.Getenv("SMTP_SERVER"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SenderEmail:  os.Getenv("SENDER_EMAIL"),
		SenderPass:   os.Getenv("SENDER_PASSWORD"),
		SenderName:   os.Getenv("SENDER_NAME"),
		AdminEmail:   os.Getenv("ADMIN_EMAIL"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.MediaDriver == "" {
		cfg.MediaDriver = "disk"
	}
	if cfg.MediaRoot == "" {
		cfg.MediaRoot = "./storage/uploads"
	}
	if cfg.SMTPPort == "" {
		cfg.SMTPPort = "587"
	}
	if cfg.SenderName == "" {
		cfg.SenderName = "Tony Custom"
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.MediaDriver == "s3" && cfg.S3Bucket == "" {
		return nil, fmt.Errorf("AWS_S3_BUCKET is required when MEDIA_DRIVER=s3")
	}

	return cfg, nil
}
