package handlers

import (
	"errors"
	"net/http"

	"gis-kpi-tracker/internal/blobstore"

	"github.com/gin-gonic/gin"
)

func (h *Handler) FilesPage(c *gin.Context) {
	entries, err := h.blobs.List(currentUserID(c))
	if err != nil {
		flash(c, "error", "Failed to load files.")
	}

	render(c, http.StatusOK, "files.html", gin.H{
		"files": entries,
	})
}

func (h *Handler) UploadFile(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		flash(c, "error", "Select a file to upload.")
		c.Redirect(http.StatusFound, "/files")
		return
	}

	f, err := fh.Open()
	if err != nil {
		flash(c, "error", "There was an error uploading your file.")
		c.Redirect(http.StatusFound, "/files")
		return
	}
	defer f.Close()

	entry, err := h.blobs.Upload(currentUserID(c), fh.Filename, f)
	if err != nil {
		flash(c, "error", "There was an error uploading your file.")
	} else {
		flash(c, "success", "File \""+entry.Name+"\" has been uploaded.")
	}

	c.Redirect(http.StatusFound, "/files")
}

// UploadFromURL validates the URL (scheme, extension) before any network
// fetch, then streams the remote file into the blob store.
func (h *Handler) UploadFromURL(c *gin.Context) {
	rawURL := c.PostForm("url")
	if rawURL == "" {
		flash(c, "error", "Please enter a URL to upload from.")
		c.Redirect(http.StatusFound, "/files")
		return
	}

	name, body, err := blobstore.FetchFromURL(c.Request.Context(), rawURL)
	switch {
	case errors.Is(err, blobstore.ErrBadScheme):
		flash(c, "error", "Only http and https URLs are allowed.")
		c.Redirect(http.StatusFound, "/files")
		return
	case errors.Is(err, blobstore.ErrBlockedExtension):
		flash(c, "error", "That file type is not allowed.")
		c.Redirect(http.StatusFound, "/files")
		return
	case err != nil:
		flash(c, "error", "Failed to fetch the file from that URL.")
		c.Redirect(http.StatusFound, "/files")
		return
	}
	defer body.Close()

	entry, err := h.blobs.Upload(currentUserID(c), name, body)
	if err != nil {
		flash(c, "error", "There was an error uploading your file.")
	} else {
		flash(c, "success", "File \""+entry.Name+"\" has been uploaded.")
	}

	c.Redirect(http.StatusFound, "/files")
}

func (h *Handler) DownloadFile(c *gin.Context) {
	name := c.Query("name")

	f, err := h.blobs.Open(currentUserID(c), name)
	if err != nil {
		flash(c, "error", "Could not get the file.")
		c.Redirect(http.StatusFound, "/files")
		return
	}
	defer f.Close()

	c.FileAttachment(f.Name(), name)
}

func (h *Handler) RenameFile(c *gin.Context) {
	oldName := c.PostForm("old_name")
	newName := c.PostForm("new_name")

	err := h.blobs.Rename(currentUserID(c), oldName, newName)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		flash(c, "error", "File not found.")
	case err != nil:
		flash(c, "error", "Could not rename the file.")
	default:
		flash(c, "success", "File renamed.")
	}

	c.Redirect(http.StatusFound, "/files")
}

func (h *Handler) DeleteFile(c *gin.Context) {
	if c.PostForm("confirm") != "yes" {
		flash(c, "error", "Deletion cancelled.")
		c.Redirect(http.StatusFound, "/files")
		return
	}

	name := c.PostForm("name")
	err := h.blobs.Delete(currentUserID(c), name)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		flash(c, "error", "File not found.")
	case err != nil:
		flash(c, "error", "Could not delete the file.")
	default:
		flash(c, "success", "File \""+name+"\" has been deleted.")
	}

	c.Redirect(http.StatusFound, "/files")
}
