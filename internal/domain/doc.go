// Package domain contains the core training entities, value objects, and
// validation rules of the application: logged sets and their technique
// variations, load progression policies, user profiles, and usage counters.
// It is independent of any specific infrastructure or delivery mechanism.
package domain
