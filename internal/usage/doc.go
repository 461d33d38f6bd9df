// Package usage meters free-tier actions per user.
//
// The Accountant keeps one domain.UsageData record per user in a
// store.KeyValueStore under the key "usage:<userID>". Workout creations are
// counted over the account's lifetime; AI requests are counted per calendar
// day and reset lazily the first time a user is seen on a new day.
package usage
