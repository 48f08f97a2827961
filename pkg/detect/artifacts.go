package detect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Fixed artifact locations, relative to the project directory.
const (
	researchFile     = "research.json"
	insightsFile     = "insights.json"
	outlineJSONFile  = "outline.json"
	outlineMDFile    = "outline.md"
	presentationFile = "presentation.md"
	optimizedFile    = "presentation_optimized.md"
	imagesDir        = "images"
	packageGlob      = "*.pptx"
)

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
}

func (d *Detector) checkResearch() ArtifactInfo {
	return d.checkJSONList(researchFile, "sources", "source_count")
}

func (d *Detector) checkInsights() ArtifactInfo {
	return d.checkJSONList(insightsFile, "insights", "insight_count")
}

// checkJSONList validates a JSON file containing a named list.
func (d *Detector) checkJSONList(name, listKey, countKey string) ArtifactInfo {
	path := filepath.Join(d.dir, name)
	info := newInfo(path)
	if !info.Exists {
		return info
	}

	doc, err := readJSONMap(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	list, ok := doc[listKey].([]interface{})
	if !ok {
		info.Error = fmt.Sprintf("%s: missing %q list", name, listKey)
		return info
	}

	info.IsValid = true
	info.Metadata[countKey] = len(list)
	return info
}

// checkOutline accepts either outline.json with a slides list or
// outline.md with at least one slide heading.
func (d *Detector) checkOutline() ArtifactInfo {
	jsonPath := filepath.Join(d.dir, outlineJSONFile)
	if _, err := os.Stat(jsonPath); err == nil {
		info := newInfo(jsonPath)
		doc, err := readJSONMap(jsonPath)
		if err != nil {
			info.Error = err.Error()
			return info
		}
		slides, ok := doc["slides"].([]interface{})
		if !ok {
			info.Error = fmt.Sprintf("%s: missing \"slides\" list", outlineJSONFile)
			return info
		}
		info.IsValid = true
		info.Metadata["slide_count"] = len(slides)
		return info
	}

	mdPath := filepath.Join(d.dir, outlineMDFile)
	info := newInfo(mdPath)
	if !info.Exists {
		return info
	}
	count, err := countSlideHeadings(mdPath)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	if count == 0 {
		info.Error = fmt.Sprintf("%s: no slide headings found", outlineMDFile)
		return info
	}
	info.IsValid = true
	info.Metadata["slide_count"] = count
	return info
}

// checkPresentation requires at least one slide section in the markdown.
func (d *Detector) checkPresentation() ArtifactInfo {
	path := filepath.Join(d.dir, presentationFile)
	info := newInfo(path)
	if !info.Exists {
		return info
	}
	count, err := countSlideHeadings(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	if count == 0 {
		info.Error = fmt.Sprintf("%s: no slide sections found", presentationFile)
		return info
	}
	info.IsValid = true
	info.Metadata["slide_count"] = count
	return info
}

// checkOptimized only requires the file to exist.
func (d *Detector) checkOptimized() ArtifactInfo {
	path := filepath.Join(d.dir, optimizedFile)
	info := newInfo(path)
	info.IsValid = info.Exists
	return info
}

// checkImages counts generated images against the expected slide count
// from the presentation artifact. The set is complete when the image
// count reaches the expected count; an unknown expectation is partial.
func (d *Detector) checkImages(expectedSlides int) ArtifactInfo {
	path := filepath.Join(d.dir, imagesDir)
	info := newInfo(path)
	if !info.Exists {
		return info
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		info.Error = err.Error()
		return info
	}
	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			count++
		}
	}
	if count == 0 {
		info.Error = fmt.Sprintf("%s: directory contains no images", imagesDir)
		return info
	}

	info.IsValid = true
	info.Metadata["image_count"] = count
	info.Metadata["expected_count"] = expectedSlides
	info.Metadata["complete"] = expectedSlides > 0 && count >= expectedSlides
	return info
}

// checkPackage looks for any packaged output file.
func (d *Detector) checkPackage() ArtifactInfo {
	matches, err := filepath.Glob(filepath.Join(d.dir, packageGlob))
	if err != nil || len(matches) == 0 {
		info := newInfo(filepath.Join(d.dir, packageGlob))
		info.Exists = false
		return info
	}

	info := newInfo(matches[0])
	info.IsValid = info.Exists
	info.Metadata["package_count"] = len(matches)
	return info
}

func newInfo(path string) ArtifactInfo {
	info := ArtifactInfo{
		Path:     path,
		Metadata: make(map[string]interface{}),
	}
	if st, err := os.Stat(path); err == nil {
		info.Exists = true
		info.ModTime = st.ModTime()
	}
	return info
}

func readJSONMap(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %v", filepath.Base(path), err)
	}
	return doc, nil
}

// countSlideHeadings counts second-level markdown headings, the slide
// delimiter used across the pipeline's markdown artifacts.
func countSlideHeadings(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "## ") {
			count++
		}
	}
	return count, nil
}
