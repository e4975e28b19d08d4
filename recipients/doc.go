// Package recipients decides who a notification is for: the sender login and
// the ordered Chatwork tag directives for the room members being notified.
package recipients
