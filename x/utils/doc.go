/*
Package utils provides decorators shared by every application stack:
atomic state changes, panic recovery, logging, metrics and tagging.
*/
package utils
