// Package domain contains the core business entities of the expense API:
// users, their public profiles, and expenses with their validation and
// partial-update rules. It is independent of storage and transport.
package domain
