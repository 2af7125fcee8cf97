// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"strings"
	"testing"
)

func TestValidatePostContent(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		slug    string
		content string
		excerpt string
		wantErr bool
	}{
		{"valid minimal", "Hola", "", "", "", false},
		{"valid full", "Hola", "hola", "cuerpo", "resumen", false},
		{"missing title", "", "", "body", "", true},
		{"whitespace title", "   ", "", "", "", true},
		{"title too long", strings.Repeat("a", 301), "", "", "", true},
		{"slug too long", "ok", strings.Repeat("a", 301), "", "", true},
		{"content too long", "ok", "", strings.Repeat("a", 100_001), "", true},
		{"excerpt too long", "ok", "", "", strings.Repeat("a", 1_001), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validatePostContent(tt.title, tt.slug, tt.content, tt.excerpt)
			if (msg != "") != tt.wantErr {
				t.Errorf("validatePostContent = %q, wantErr=%v", msg, tt.wantErr)
			}
		})
	}
}

func TestValidateComment(t *testing.T) {
	if msg := validateComment("Ana", "buen artículo"); msg != "" {
		t.Errorf("valid comment rejected: %s", msg)
	}
	if validateComment("", "texto") == "" {
		t.Error("missing author_name should fail")
	}
	if validateComment("Ana", "  ") == "" {
		t.Error("blank content should fail")
	}
	if validateComment("Ana", strings.Repeat("x", 5_001)) == "" {
		t.Error("oversized content should fail")
	}
}

func TestValidateCredentials(t *testing.T) {
	if msg := validateCredentials("ana@example.com", "password123", "Ana"); msg != "" {
		t.Errorf("valid credentials rejected: %s", msg)
	}
	if validateCredentials("not-an-email", "password123", "") == "" {
		t.Error("email without @ should fail")
	}
	if validateCredentials("ana@example.com", "short", "") == "" {
		t.Error("short password should fail")
	}
	if validateCredentials("", "password123", "") == "" {
		t.Error("empty email should fail")
	}
}
