// Package notify holds middlewares for the failure notification channel.
package notify
