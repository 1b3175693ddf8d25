// Package jira implements lifecycle.IssueTracker on top of the Jira Service Desk REST API.
package jira
