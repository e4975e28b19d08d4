// Package chatwork is a minimal client for the Chatwork v2 REST API. It only
// implements posting a message to a room. Credentials are passed per call so
// one client can serve every tenant concurrently.
package chatwork
