// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo carries version metadata injected at link time.
type AppBuildInfo struct {
	BuildVersion string `json:"build_version"`
	BuildDate    string `json:"build_date"`
	BuildCommit  string `json:"build_commit"`
}

// NewAppBuildInfo replaces empty values with "N/A".
func NewAppBuildInfo(version, date, commit string) AppBuildInfo {
	return AppBuildInfo{
		BuildVersion: orNA(version),
		BuildDate:    orNA(date),
		BuildCommit:  orNA(commit),
	}
}

func (b AppBuildInfo) String() string {
	return fmt.Sprintf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", b.BuildVersion, b.BuildDate, b.BuildCommit)
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}
